// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides SHA256 content hashing for binary files.
//
// The entrypoint records the digest of the bridge binary it is about
// to invoke. Container images are rebuilt for many reasons that leave
// the bridge byte-identical (base image refresh, entrypoint changes),
// and comparing digests across startup logs distinguishes a real
// bridge update from a mere image rebuild.
//
// This package has no dependencies on other bridgeboot packages.
package binhash
