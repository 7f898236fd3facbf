// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides filtering capabilities for package result rows.
//
// The package parses filter expressions to select subsets of rows based on
// field values. Filters are specified as key-operator-target expressions and
// can be combined using a configurable delimiter (default: comma).
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than (numeric comparison)
//   - > : greater than (numeric comparison)
//   - @ : contains substring or member (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "category=staged_new" : rows whose category equals "staged_new"
//   - "package^cupy" : rows whose package name starts with "cupy"
//   - "package!@test" : rows whose package name does not contain "test"
//   - "required_by@scanpy" : rows whose dependents include "scanpy"
//
// Filter keys are matched against the OutputKey of attributes (see attrs
// package).
//
// The BuildFilters function parses a comma-delimited (or custom-delimited)
// filter specification string. Invalid specifications (unsupported operands or
// malformed expressions) are logged and skipped, allowing partial filter sets
// to be processed.
package filters
