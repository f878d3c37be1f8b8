// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return fmt.Sprintf("subprocess exited with code %d", e.code) }
func (e *codedError) ExitCode() int { return e.code }

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("plain failure")); got != 1 {
		t.Errorf("ExitCode(plain) = %d, want 1", got)
	}
	if got := ExitCode(&codedError{code: 11}); got != 11 {
		t.Errorf("ExitCode(coded) = %d, want 11", got)
	}
}

func TestFatalExitsWithDerivedCode(t *testing.T) {
	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()
	var exitedWith int
	exitFunc = func(code int) { exitedWith = code }

	Fatal(&codedError{code: 23})
	if exitedWith != 23 {
		t.Errorf("Fatal(coded) exited with %d, want 23", exitedWith)
	}

	Fatal(errors.New("plain failure"))
	if exitedWith != 1 {
		t.Errorf("Fatal(plain) exited with %d, want 1", exitedWith)
	}
}

func TestExitCodeWrapped(t *testing.T) {
	// The code must survive fmt.Errorf %w wrapping — run() wraps stage
	// errors for context before main() extracts the code.
	err := fmt.Errorf("generating registration: %w", &codedError{code: 7})
	if got := ExitCode(err); got != 7 {
		t.Errorf("ExitCode(wrapped) = %d, want 7", got)
	}
}
