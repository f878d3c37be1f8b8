// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const exampleTemplate = `# Example bridge config.
homeserver:
    address: https://matrix.example.com
logging:
    handlers:
        file:
            filename: ./mautrix-twitter.log
`

func TestCopyTemplateVerbatim(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "example-config.yaml")
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(templatePath, []byte(exampleTemplate), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := CopyTemplate(templatePath, configPath); err != nil {
		t.Fatalf("CopyTemplate: %v", err)
	}

	got, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, []byte(exampleTemplate)) {
		t.Errorf("config differs from template:\ngot:  %q\nwant: %q", got, exampleTemplate)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopyTemplateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "example-config.yaml")
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(templatePath, []byte(exampleTemplate), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	edited := []byte("homeserver:\n    address: https://edited.example.com\n")
	if err := os.WriteFile(configPath, edited, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := CopyTemplate(templatePath, configPath)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("CopyTemplate over existing config = %v, want ErrExist", err)
	}

	// The operator's edits must be untouched.
	got, readErr := os.ReadFile(configPath)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if !bytes.Equal(got, edited) {
		t.Errorf("existing config was modified: %q", got)
	}
}

func TestCopyTemplateMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	err := CopyTemplate(filepath.Join(dir, "absent.yaml"), filepath.Join(dir, "config.yaml"))
	if err == nil {
		t.Fatal("CopyTemplate with missing template should error")
	}
}

func TestCopyTemplateInvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "example-config.yaml")
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(templatePath, []byte("logging: [unclosed"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := CopyTemplate(templatePath, configPath); err == nil {
		t.Fatal("CopyTemplate with unparseable template should error")
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Errorf("config should not exist after failed copy, stat err = %v", err)
	}
}
