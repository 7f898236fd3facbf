// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output provides sorting, filtering, and emission utilities used by
// commands to present package result sets in various formats.
package output
