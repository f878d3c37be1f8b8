// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Package startup decides what a container start does.
//
// [DetectState] reduces the data directory to one of three states from
// two file-existence checks: [NeedsBootstrap] (no config),
// [NeedsRegistration] (config but no registration), [ReadyToLaunch]
// (both present). [Orchestrator.Run] executes exactly one action per
// invocation:
//
//	NeedsBootstrap     → bootstrap, normalize, exit 0
//	NeedsRegistration  → generate; on failure exit with the bridge's
//	                     own code (normalization skipped); on success
//	                     normalize, exit 0
//	ReadyToLaunch      → normalize, exec the bridge (never returns)
//
// The orchestrator is a pure function of filesystem state at call
// time: a crash at any point is recovered by simply running again.
//
// Stage implementations are injected as functions, so this package
// depends on no other bridgeboot packages.
package startup
