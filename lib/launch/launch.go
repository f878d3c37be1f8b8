// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/mautrix/bridgeboot/lib/ownership"
)

// Launcher hands the container's primary process slot to the bridge.
type Launcher struct {
	// BridgeBinary is the resolved, validated path to the bridge.
	BridgeBinary string

	// ConfigPath is passed to the bridge as -c.
	ConfigPath string

	// Identity is the uid:gid the bridge runs as.
	Identity ownership.Spec

	// execFunc and dropFunc are overridable in tests. Nil values use
	// syscall.Exec and the real privilege drop.
	execFunc func(argv0 string, argv []string, envv []string) error
	dropFunc func(spec ownership.Spec) error
}

// Exec drops privileges to the launcher's identity and replaces the
// current process image with `<bridge> -c <config>`, inheriting the
// environment. On success this never returns: the bridge takes over
// the process slot, its signals, and its eventual exit status. A
// returned error means the drop or the exec itself failed; there is no
// fallback execution path.
func (l *Launcher) Exec() error {
	drop := l.dropFunc
	if drop == nil {
		drop = dropPrivileges
	}
	if err := drop(l.Identity); err != nil {
		return fmt.Errorf("dropping privileges to %s: %w", l.Identity, err)
	}

	execFunction := l.execFunc
	if execFunction == nil {
		execFunction = syscall.Exec
	}
	argv := []string{l.BridgeBinary, "-c", l.ConfigPath}
	if err := execFunction(l.BridgeBinary, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", l.BridgeBinary, err)
	}
	return nil
}

// dropPrivileges switches the process to spec's identity. Order
// matters: supplementary groups and gid must change while the process
// still has the privilege to change them, uid last. When the process
// already runs as the target identity (a container started with
// --user), the drop is a no-op — there is nothing to drop and the
// setuid calls would fail without CAP_SETUID.
func dropPrivileges(spec ownership.Spec) error {
	if os.Getuid() == spec.UID && os.Getgid() == spec.GID {
		return nil
	}
	if err := unix.Setgroups([]int{spec.GID}); err != nil {
		return fmt.Errorf("setgroups: %w", err)
	}
	if err := unix.Setresgid(spec.GID, spec.GID, spec.GID); err != nil {
		return fmt.Errorf("setresgid: %w", err)
	}
	if err := unix.Setresuid(spec.UID, spec.UID, spec.UID); err != nil {
		return fmt.Errorf("setresuid: %w", err)
	}
	return nil
}
