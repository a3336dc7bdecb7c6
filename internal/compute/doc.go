// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package compute is the compute provisioning façade. It submits a single
// fire-and-report spot instance request.
package compute
