// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package logpatch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sentinelConfig = `homeserver:
    address: https://matrix.example.com
logging:
    version: 1
    formatters:
        colored:
            format: "[%(asctime)s] [%(levelname)s@%(name)s] %(message)s"
    handlers:
        file:
            class: logging.handlers.RotatingFileHandler
            formatter: colored
            filename: ./mautrix-twitter.log
        console:
            class: logging.StreamHandler
            formatter: colored
    root:
        level: DEBUG
        handlers:
            - file
            - console
`

const customLogConfig = `logging:
    handlers:
        file:
            filename: /data/custom.log
        console:
            class: logging.StreamHandler
    root:
        handlers:
            - file
            - console
`

// decode parses a patched document back into generic maps for
// structural assertions.
func decode(t *testing.T, document []byte) map[string]any {
	t.Helper()
	var parsed map[string]any
	if err := yaml.Unmarshal(document, &parsed); err != nil {
		t.Fatalf("patched document does not parse: %v", err)
	}
	return parsed
}

func TestApplyRemovesSentinelFileHandler(t *testing.T) {
	patched, changed, err := Apply([]byte(sentinelConfig))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatal("Apply on sentinel config should report changed")
	}

	parsed := decode(t, patched)
	logging := parsed["logging"].(map[string]any)

	handlers := logging["handlers"].(map[string]any)
	if _, exists := handlers["file"]; exists {
		t.Error("logging.handlers.file should be deleted")
	}
	if _, exists := handlers["console"]; !exists {
		t.Error("logging.handlers.console should survive")
	}

	rootHandlers := logging["root"].(map[string]any)["handlers"].([]any)
	for _, handler := range rootHandlers {
		if handler == "file" {
			t.Error("logging.root.handlers should not contain file")
		}
	}
	if len(rootHandlers) != 1 || rootHandlers[0] != "console" {
		t.Errorf("logging.root.handlers = %v, want [console]", rootHandlers)
	}

	// Sections outside logging survive the rewrite.
	homeserver := parsed["homeserver"].(map[string]any)
	if homeserver["address"] != "https://matrix.example.com" {
		t.Errorf("homeserver.address = %v, want original value", homeserver["address"])
	}

	// The rewrite uses the shipped config's 4-space layout.
	if !strings.Contains(string(patched), "\n    handlers:") {
		t.Errorf("patched document not 4-space indented:\n%s", patched)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	patched, changed, err := Apply([]byte(sentinelConfig))
	if err != nil || !changed {
		t.Fatalf("first Apply: changed=%v err=%v", changed, err)
	}

	again, changed, err := Apply(patched)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if changed {
		t.Error("second Apply should report unchanged")
	}
	if !bytes.Equal(again, patched) {
		t.Errorf("second Apply not byte-stable:\nfirst:  %q\nsecond: %q", patched, again)
	}
}

func TestApplyPreservesCustomLogPath(t *testing.T) {
	patched, changed, err := Apply([]byte(customLogConfig))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if changed {
		t.Error("Apply on custom log path should report unchanged")
	}
	if !bytes.Equal(patched, []byte(customLogConfig)) {
		t.Errorf("custom log config was modified:\n%s", patched)
	}
}

func TestApplyToleratesMissingSections(t *testing.T) {
	documents := []string{
		"",
		"homeserver:\n    address: https://example.com\n",
		"logging: {}\n",
		"logging:\n    handlers: {}\n",
		"logging:\n    handlers:\n        file: {}\n",
		"logging:\n    handlers:\n        file:\n            filename: [not, a, scalar]\n",
	}
	for _, document := range documents {
		patched, changed, err := Apply([]byte(document))
		if err != nil {
			t.Errorf("Apply(%q): %v", document, err)
			continue
		}
		if changed {
			t.Errorf("Apply(%q) reported changed", document)
		}
		if !bytes.Equal(patched, []byte(document)) {
			t.Errorf("Apply(%q) modified the document", document)
		}
	}
}

func TestApplySentinelWithoutRootHandlers(t *testing.T) {
	document := "logging:\n    handlers:\n        file:\n            filename: ./mautrix-twitter.log\n"
	patched, changed, err := Apply([]byte(document))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Fatal("Apply should still delete the handler block without a root section")
	}
	parsed := decode(t, patched)
	handlers := parsed["logging"].(map[string]any)["handlers"].(map[string]any)
	if _, exists := handlers["file"]; exists {
		t.Error("logging.handlers.file should be deleted")
	}
}

func TestApplyInvalidYAML(t *testing.T) {
	if _, _, err := Apply([]byte("logging: [unclosed")); err == nil {
		t.Fatal("Apply on invalid YAML should error")
	}
}

func TestPatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sentinelConfig), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	changed, err := PatchFile(path)
	if err != nil {
		t.Fatalf("PatchFile: %v", err)
	}
	if !changed {
		t.Fatal("PatchFile on sentinel config should report changed")
	}

	firstPass, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("patched config mode = %v, want 0600 preserved", info.Mode().Perm())
	}

	// Second run: nothing to patch, file untouched.
	changed, err = PatchFile(path)
	if err != nil {
		t.Fatalf("second PatchFile: %v", err)
	}
	if changed {
		t.Error("second PatchFile should report unchanged")
	}
	secondPass, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(firstPass, secondPass) {
		t.Error("second PatchFile modified the file")
	}
}

func TestPatchFileLeavesCustomConfigAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(customLogConfig), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	changed, err := PatchFile(path)
	if err != nil {
		t.Fatalf("PatchFile: %v", err)
	}
	if changed {
		t.Error("PatchFile on custom config should report unchanged")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, []byte(customLogConfig)) {
		t.Errorf("custom config rewritten:\n%s", got)
	}
}

func TestPatchFileMissing(t *testing.T) {
	if _, err := PatchFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("PatchFile on missing file should error")
	}
}
