// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CopyTemplate installs the shipped template as the bridge config at
// configPath. The copy is byte-for-byte verbatim: user-facing comments
// and formatting in the template survive into the config the operator
// will edit.
//
// The target must not exist. Bootstrap only ever runs on a fresh data
// directory; overwriting would destroy an operator's edited config on
// container restart, so an existing target is an error even though the
// orchestrator already gates on existence.
func CopyTemplate(templatePath, configPath string) error {
	if _, err := os.Lstat(configPath); err == nil {
		return fmt.Errorf("config %s already exists: %w", configPath, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config %s: %w", configPath, err)
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", templatePath, err)
	}

	// A template that does not parse would produce a config the bridge
	// rejects on every subsequent start. Fail at copy time, where the
	// error names the broken image artifact instead of a user file.
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("template %s is not valid YAML: %w", templatePath, err)
	}

	// Temp file + rename in the target directory so a crash mid-copy
	// never leaves a truncated config that the next invocation would
	// mistake for a real one. 0600: the config will hold homeserver
	// tokens once the operator fills it in.
	temporaryPath := configPath + ".tmp"
	if err := os.WriteFile(temporaryPath, data, 0600); err != nil {
		return fmt.Errorf("writing temporary config: %w", err)
	}
	if err := os.Rename(temporaryPath, configPath); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming config into place: %w", err)
	}
	return nil
}

// DefaultTemplatePath returns the template location shipped with the
// image: example-config.yaml next to the entrypoint binary. Returns an
// empty string when the entrypoint's own path cannot be resolved; the
// caller validates the result before bootstrapping.
func DefaultTemplatePath() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(executable), "example-config.yaml")
}
