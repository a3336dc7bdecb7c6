// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a listing with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (comma
// unless S3CLI_FILTER_DELIM says otherwise).
//
// Operators:
//
//   - = : exact match (negate with !=)
//   - ^ : prefix match (negate with !^)
//   - ~ : case-insensitive match (negate with !~)
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains substring (negate with !@)
//   - / : regex match (negate with !/)
//
// Examples:
//
//   - "name^logs-" : buckets whose name starts with "logs-"
//   - "size>1048576" : objects larger than 1 MiB
//   - "key/\.tar\.gz$" : keys ending in .tar.gz
//   - "storage_class!=STANDARD" : objects in any other class
//
// Keys are matched against the OutputKey of the listing's attrs; other keys
// are tried as dotted paths into the row. Keys prefixed with an underscore
// are server-side filters (for example "_prefix=logs/") that are folded into
// the S3 request and ignored when rows are matched.
package filters
