// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package launch performs the terminal handoff from the entrypoint to
// the bridge.
//
// [Launcher.Exec] drops the process's privileges to the target runtime
// identity (setgroups, setresgid, setresuid — in that order) and then
// replaces the process image via exec. No parent remains to observe
// the bridge: the container's exit status becomes whatever the bridge
// eventually exits with. The drop is skipped when the process already
// runs as the target identity, which is the case for containers
// started with a non-root --user.
//
// Depends on lib/ownership for the identity type.
package launch
