// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders command results. Listings pass through
// SliceDiceSpit (filter, sort, transform, then a table or json/yaml/raw
// document); single results go through Emit.
package output
