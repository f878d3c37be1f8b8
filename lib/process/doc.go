// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for bridgeboot.
// These centralize the two raw I/O patterns that legitimately exist
// outside the structured logger:
//
//   - [Fatal]: error reporting to stderr and process termination in
//     main(), where the logger may not be initialized.
//   - [ExitCode]: exit code extraction, including verbatim passthrough
//     of subprocess exit codes via the ExitCode() int error interface.
//
// Fatal exits with the code ExitCode derives, so a failed registration
// generation becomes the container's exit status unchanged.
package process
