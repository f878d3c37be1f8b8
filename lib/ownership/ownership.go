// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package ownership

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DefaultUID is the runtime user of the published bridge images.
	DefaultUID = 1337
	// DefaultGID is the runtime group of the published bridge images.
	DefaultGID = 1337
)

// Spec is the target identity for the data directory and the final
// privilege drop. Resolved once per invocation in main() and threaded
// as a parameter — never re-read from ambient process state.
type Spec struct {
	UID int
	GID int
}

// String returns the "uid:gid" form used in log output.
func (s Spec) String() string {
	return strconv.Itoa(s.UID) + ":" + strconv.Itoa(s.GID)
}

// Resolve determines the target identity. A non-negative flag value
// wins; otherwise the BRIDGEBOOT_UID / BRIDGEBOOT_GID environment
// variables are consulted; otherwise the image defaults apply. A
// malformed environment value is an error rather than a silent
// fallback — a typo'd UID must not hand the data directory to the
// wrong user.
func Resolve(flagUID, flagGID int) (Spec, error) {
	uid, err := resolveID(flagUID, "BRIDGEBOOT_UID", DefaultUID)
	if err != nil {
		return Spec{}, err
	}
	gid, err := resolveID(flagGID, "BRIDGEBOOT_GID", DefaultGID)
	if err != nil {
		return Spec{}, err
	}
	return Spec{UID: uid, GID: gid}, nil
}

func resolveID(flagValue int, envVariable string, defaultValue int) (int, error) {
	if flagValue >= 0 {
		return flagValue, nil
	}
	raw := os.Getenv(envVariable)
	if raw == "" {
		return defaultValue, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%s=%q is not a valid numeric id", envVariable, raw)
	}
	return id, nil
}

// ChownTree recursively sets ownership of every entry under root
// (inclusive) to spec. Symlinks are re-owned themselves, never
// followed — a link pointing out of the data directory must not let a
// crafted config re-own host files.
//
// The first failure aborts the walk. There is no partial rollback;
// the orchestrator is idempotent and a re-run repeats the walk.
func ChownTree(root string, spec Spec) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if err := os.Lchown(path, spec.UID, spec.GID); err != nil {
			return fmt.Errorf("chown %s to %s: %w", path, spec, err)
		}
		return nil
	})
}
