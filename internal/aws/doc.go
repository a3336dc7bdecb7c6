// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws is the cloud session provider. It resolves the active region
// through an ordered chain, loads SDK v2 config from the ambient credential
// chain and hands out narrow S3 and EC2 interfaces.
package aws
