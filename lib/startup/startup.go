// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package startup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// State is what the data directory needs on this container start.
// Computed once per invocation from two file-existence checks; the
// orchestrator retains nothing between invocations beyond the
// filesystem itself.
type State int

const (
	// NeedsBootstrap: no config exists yet. Install the default.
	NeedsBootstrap State = iota
	// NeedsRegistration: config exists, registration does not.
	NeedsRegistration
	// ReadyToLaunch: both files exist. Normalize and hand off.
	ReadyToLaunch
)

func (s State) String() string {
	switch s {
	case NeedsBootstrap:
		return "needs-bootstrap"
	case NeedsRegistration:
		return "needs-registration"
	case ReadyToLaunch:
		return "ready-to-launch"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome is the terminal result of a Run that returned control.
// The launch path normally never produces one — the process image is
// replaced.
type Outcome int

const (
	// OutcomeBootstrapped: default config installed, clean exit so the
	// operator can edit it.
	OutcomeBootstrapped Outcome = iota
	// OutcomeGenerated: registration produced, clean exit so the
	// operator can install it on the homeserver.
	OutcomeGenerated
	// OutcomeLaunched: the launcher returned nil, which only happens
	// under test fakes — a real exec does not return.
	OutcomeLaunched
	// OutcomeFailed: a stage failed; the error carries the exit code.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBootstrapped:
		return "bootstrapped"
	case OutcomeGenerated:
		return "generated"
	case OutcomeLaunched:
		return "launched"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// DetectState inspects the two gating files. Only non-existence
// selects a branch; any other stat failure (permission, I/O) is an
// error rather than a guess that could overwrite operator data.
func DetectState(configPath, registrationPath string) (State, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return NeedsBootstrap, nil
	} else if err != nil {
		return 0, fmt.Errorf("stat config %s: %w", configPath, err)
	}
	if _, err := os.Stat(registrationPath); os.IsNotExist(err) {
		return NeedsRegistration, nil
	} else if err != nil {
		return 0, fmt.Errorf("stat registration %s: %w", registrationPath, err)
	}
	return ReadyToLaunch, nil
}

// Orchestrator sequences the startup stages. The stage functions are
// wired in main() to the real implementations; tests substitute fakes
// to verify sequencing without a filesystem or subprocesses.
type Orchestrator struct {
	// ConfigPath and RegistrationPath gate the state decision.
	ConfigPath       string
	RegistrationPath string

	// Bootstrap installs the default config (lib/bootstrap).
	Bootstrap func() error

	// Generate produces the appservice registration (lib/regen). Its
	// error may carry the bridge subprocess's verbatim exit code.
	Generate func(ctx context.Context) error

	// Normalize re-owns the data directory and repairs the logging
	// config (lib/ownership + lib/logpatch).
	Normalize func() error

	// Launch performs the terminal handoff (lib/launch). Does not
	// return on success.
	Launch func() error

	Logger *slog.Logger
}

// Run performs exactly one of the three startup actions based on
// filesystem state.
//
// Bootstrap and successful generation normalize and then return a
// clean outcome: the container exits 0 and the operator acts on the
// new file before restarting. A failed generation returns immediately
// with the generator's error — normalization is deliberately skipped
// because the data directory may be partially written. The launch path
// normalizes unconditionally and then never returns.
func (o *Orchestrator) Run(ctx context.Context) (Outcome, error) {
	state, err := DetectState(o.ConfigPath, o.RegistrationPath)
	if err != nil {
		return OutcomeFailed, err
	}
	o.Logger.Info("startup state determined",
		"state", state.String(),
		"config", o.ConfigPath,
		"registration", o.RegistrationPath,
	)

	switch state {
	case NeedsBootstrap:
		if err := o.Bootstrap(); err != nil {
			return OutcomeFailed, fmt.Errorf("bootstrapping config: %w", err)
		}
		if err := o.Normalize(); err != nil {
			return OutcomeFailed, err
		}
		o.Logger.Info("default config installed; edit it and restart the container",
			"config", o.ConfigPath)
		return OutcomeBootstrapped, nil

	case NeedsRegistration:
		if err := o.Generate(ctx); err != nil {
			// No normalization: the bridge may have left the data
			// directory partially written.
			return OutcomeFailed, fmt.Errorf("generating registration: %w", err)
		}
		if err := o.Normalize(); err != nil {
			return OutcomeFailed, err
		}
		o.Logger.Info("registration generated; install it on the homeserver and restart the container",
			"registration", o.RegistrationPath)
		return OutcomeGenerated, nil

	default: // ReadyToLaunch
		if err := o.Normalize(); err != nil {
			return OutcomeFailed, err
		}
		o.Logger.Info("handing off to bridge", "config", o.ConfigPath)
		if err := o.Launch(); err != nil {
			return OutcomeFailed, err
		}
		return OutcomeLaunched, nil
	}
}
