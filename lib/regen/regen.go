// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package regen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExitError reports a generation run that exited nonzero. The code is
// the bridge subprocess's own, carried verbatim so the container exits
// with exactly the code the bridge produced.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("bridge registration generation exited with code %d", e.Code)
}

// ExitCode satisfies the passthrough interface checked in main().
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Generator runs the bridge in its one-shot registration mode.
type Generator struct {
	// BridgeBinary is the resolved, validated path to the bridge.
	BridgeBinary string

	// ConfigPath is the existing bridge config (-c).
	ConfigPath string

	// RegistrationPath is where the bridge writes the appservice
	// registration (-r).
	RegistrationPath string

	// Stdout and Stderr receive the subprocess output. Nil values
	// default to the entrypoint's own stdout/stderr — the bridge's
	// messages are the only operator-facing diagnostics for this
	// stage.
	Stdout io.Writer
	Stderr io.Writer
}

// Generate invokes the bridge with -g -c <config> -r <registration>
// and blocks until it exits. A nonzero subprocess exit is returned as
// an [*ExitError] with the verbatim code: no retry, no translation,
// no special logging. Any other failure (binary missing, fork failure)
// is returned as-is.
func (g *Generator) Generate(ctx context.Context) error {
	command := exec.CommandContext(ctx, g.BridgeBinary,
		"-g", "-c", g.ConfigPath, "-r", g.RegistrationPath)
	command.Stdout = g.Stdout
	if command.Stdout == nil {
		command.Stdout = os.Stdout
	}
	command.Stderr = g.Stderr
	if command.Stderr == nil {
		command.Stderr = os.Stderr
	}

	err := command.Run()
	if err == nil {
		return nil
	}
	var exitError *exec.ExitError
	if errors.As(err, &exitError) && exitError.ExitCode() > 0 {
		return &ExitError{Code: exitError.ExitCode()}
	}
	return fmt.Errorf("running %s: %w", g.BridgeBinary, err)
}
