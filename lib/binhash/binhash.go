// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileDigest computes the hex-encoded SHA256 digest of the file at
// path. The file is streamed through the hash function (via io.Copy)
// to keep memory usage constant regardless of file size.
//
// Bridgeboot logs the digest of the bridge binary before generation
// and launch so that a container image rebuild that silently swapped
// the bridge is visible in the startup log, and byte-identical
// rebuilds are recognizable as such.
func FileDigest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
