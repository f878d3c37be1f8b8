// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package ownership resolves the target runtime identity and applies
// it to the bridge's data directory.
//
// The entrypoint typically starts as root (the container runtime's
// default) while the bridge must run and own its data as an
// unprivileged user. [Resolve] computes that identity once per
// invocation from flags, BRIDGEBOOT_UID/BRIDGEBOOT_GID, or the image
// default (1337:1337). [ChownTree] re-owns the data directory tree so
// files created by a root-owned bootstrap or generation run are
// accessible to the eventual runtime identity.
//
// This package has no dependencies on other bridgeboot packages.
package ownership
