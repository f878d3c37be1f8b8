// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package logpatch repairs a known-bad logging section in the bridge
// config.
//
// The shipped example config logs to ./mautrix-twitter.log, a path
// relative to the bridge's working directory. In the container that
// directory is the read-only install location, so a config inherited
// from the template without relocating the log destination makes the
// bridge crash on startup. [Apply] detects that exact sentinel path
// and removes file logging entirely (the console handler remains); any
// other filename is treated as a deliberate operator choice and left
// alone.
//
// [Apply] is a pure transform over document bytes, unit-testable
// without a filesystem. [PatchFile] is the thin read-transform-write
// boundary around it.
//
// This package has no dependencies on other bridgeboot packages.
package logpatch
