// Copyright 2026 The Bridgeboot Authors
// SPDX-License-Identifier: Apache-2.0

// Bridgeboot is the container entrypoint for the mautrix-twitter
// bridge. On each start it performs exactly one action based on what
// exists under /data: install the default config (then exit so the
// operator can edit it), generate the appservice registration (then
// exit so the operator can install it), or normalize ownership and
// exec the bridge, handing it the container's primary process slot.
package main
