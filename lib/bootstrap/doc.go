// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap creates the default bridge configuration on first
// container start.
//
// The bridge image ships an example config next to the entrypoint
// binary in the read-only install directory. When /data holds no
// config yet, [CopyTemplate] installs it verbatim (after checking it
// parses as YAML) using a temp-file-plus-rename write so a crash never
// leaves a truncated config behind. It refuses to overwrite an
// existing config; repeated container restarts must never destroy an
// operator's edits.
//
// This package has no dependencies on other bridgeboot packages.
package bootstrap
