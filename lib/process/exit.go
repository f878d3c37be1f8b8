// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"os"
)

// exitFunc is overridable in tests; os.Exit is untestable in-process.
var exitFunc = os.Exit

// Fatal writes "error: err" to stderr and terminates the process with
// the code [ExitCode] derives from err. This is the single exit path
// for errors from run() in main(): a plain failure exits 1, while an
// error carrying a subprocess exit code exits with that code verbatim.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	exitFunc(ExitCode(err))
}

// ExitCode extracts a process exit code from err. When err (or any
// error in its chain) carries an ExitCode() int method, that code is
// returned verbatim — this is how a failed registration generation
// propagates the bridge subprocess's own exit code through run() to
// the container without translation. Any other non-nil error maps to
// exit code 1. A nil error maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
