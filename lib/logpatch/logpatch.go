// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package logpatch

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SentinelLogPath is the file-logging destination baked into the
// shipped example config. It is relative to the bridge's working
// directory, which in the container is the read-only install
// directory — a config still pointing here would make the bridge fail
// at startup when it opens the log file for writing.
const SentinelLogPath = "./mautrix-twitter.log"

// Apply removes file logging from document if and only if
// logging.handlers.file.filename equals [SentinelLogPath]: the "file"
// entry is dropped from the logging.root.handlers sequence and the
// logging.handlers.file block is deleted. Any other filename is a
// deliberate operator choice and the document is returned unchanged.
//
// The patched document is re-encoded with 4-space indentation, the
// layout the shipped config uses, so repeated normalization is
// byte-stable: after one patch the sentinel is gone and every later
// call reports changed == false.
func Apply(document []byte) (patched []byte, changed bool, err error) {
	var root yaml.Node
	if err := yaml.Unmarshal(document, &root); err != nil {
		return nil, false, fmt.Errorf("parsing config: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return document, false, nil
	}
	top := root.Content[0]

	logging := mappingValue(top, "logging")
	handlers := mappingValue(logging, "handlers")
	fileHandler := mappingValue(handlers, "file")
	filename := mappingValue(fileHandler, "filename")
	if filename == nil || filename.Kind != yaml.ScalarNode || filename.Value != SentinelLogPath {
		return document, false, nil
	}

	deleteMappingKey(handlers, "file")
	if rootSection := mappingValue(logging, "root"); rootSection != nil {
		removeSequenceString(mappingValue(rootSection, "handlers"), "file")
	}

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(4)
	if err := encoder.Encode(&root); err != nil {
		return nil, false, fmt.Errorf("re-encoding config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, false, fmt.Errorf("re-encoding config: %w", err)
	}
	return buffer.Bytes(), true, nil
}

// PatchFile applies [Apply] to the file at path in place. The rewrite
// only happens when the patch changed something, and goes through a
// temp file + rename (preserving the original mode) so a crash never
// leaves a half-written config. Reports whether the file was modified.
func PatchFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading config %s: %w", path, err)
	}

	patched, changed, err := Apply(data)
	if err != nil {
		return false, fmt.Errorf("patching config %s: %w", path, err)
	}
	if !changed {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat config %s: %w", path, err)
	}
	temporaryPath := path + ".tmp"
	if err := os.WriteFile(temporaryPath, patched, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing patched config: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return false, fmt.Errorf("renaming patched config into place: %w", err)
	}
	return true, nil
}

// mappingValue returns the value node for key in a mapping node, or
// nil when node is nil, not a mapping, or the key is absent. Nil
// tolerance lets lookups chain without per-level checks.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	// Mapping content alternates key, value.
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// deleteMappingKey removes key (and its value) from a mapping node.
func deleteMappingKey(node *yaml.Node, key string) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content = append(node.Content[:i], node.Content[i+2:]...)
			return
		}
	}
}

// removeSequenceString removes every scalar equal to value from a
// sequence node.
func removeSequenceString(node *yaml.Node, value string) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return
	}
	kept := node.Content[:0]
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode && item.Value == value {
			continue
		}
		kept = append(kept, item)
	}
	node.Content = kept
}
