// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StubBridge writes an executable shell script that stands in for the
// bridge binary. The script records its argv (one argument per line)
// to the returned argv file before running body, so tests can assert
// the exact invocation. body is ordinary shell; an empty body exits 0.
//
//	bridge, argv := testutil.StubBridge(t, "touch /data/registration.yaml")
//	bridge, argv := testutil.StubBridge(t, "exit 31")
func StubBridge(t *testing.T, body string) (binaryPath, argvPath string) {
	t.Helper()

	dir := t.TempDir()
	binaryPath = filepath.Join(dir, "mautrix-twitter")
	argvPath = filepath.Join(dir, "argv")

	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\n%s\n", argvPath, body)
	if err := os.WriteFile(binaryPath, []byte(script), 0755); err != nil {
		t.Fatalf("writing stub bridge: %v", err)
	}
	return binaryPath, argvPath
}

// RecordedArgs reads the argv file a stub bridge wrote and returns the
// arguments the stub was invoked with (excluding the binary name).
// Fails the test when the stub never ran.
func RecordedArgs(t *testing.T, argvPath string) []string {
	t.Helper()

	data, err := os.ReadFile(argvPath)
	if err != nil {
		t.Fatalf("stub bridge was never invoked: %v", err)
	}
	trimmed := strings.TrimSuffix(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
