// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store is the object store façade. Every mutating operation checks
// its precondition (bucket or key existence, bucket emptiness) before calling
// S3 and reports failures as *apperr.Error values. Nothing in this package
// terminates the process.
//
// Existence checks run in one of two modes. LookupHead issues a point query
// (HeadBucket, HeadObject) and falls back to a scan when the answer is an
// ambiguous 403. LookupScan enumerates a full listing and compares names.
package store
