// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package regen runs the bridge's one-shot registration generation
// mode.
//
// The bridge, invoked with -g -c <config> -r <registration>, writes
// the appservice registration the homeserver needs and exits. Its exit
// code is the authoritative success signal: [Generator.Generate]
// reports a nonzero exit as an [ExitError] carrying the verbatim code,
// which the entrypoint propagates unchanged as the container's exit
// status. The registration content itself is opaque to bridgeboot.
//
// This package has no dependencies on other bridgeboot packages.
package regen
