// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the entrypoint's structured logger. Text output on
// a terminal, JSON otherwise; level Info either way.
func NewLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
