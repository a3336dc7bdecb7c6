// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package fetch downloads a prebuilt binary artifact by running an external
// HTTP fetch program (wget unless configured otherwise).
package fetch
