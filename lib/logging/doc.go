// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging constructs the bridgeboot structured logger.
//
// [NewLogger] selects the slog handler by output destination: a
// human-readable text handler when stderr is a terminal (an operator
// running the container interactively), a JSON handler when stderr is
// piped or captured (the normal container runtime case), so log
// collectors receive machine-parseable records alongside whatever the
// bridge subprocess itself emits.
//
// This package has no dependencies on other bridgeboot packages.
package logging
