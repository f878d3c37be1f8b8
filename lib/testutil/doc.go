// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bridgeboot
// packages.
//
// [StubBridge] generates a throwaway shell script that impersonates
// the bridge binary: it records the argv it was invoked with and then
// runs a caller-supplied body (create a registration file, exit with a
// chosen code). Tests for the generation and launch paths assert
// against real subprocess behavior without needing the actual bridge.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on other bridgeboot packages.
package testutil
