// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package pypi implements PEP 503 package name handling shared by the freeze
// listing, the pyproject manifest, and the classifier. All lookups between
// those sources are exact-match after Normalize.
package pypi

import (
	"regexp"
	"strings"
)

// separatorRuns matches runs of the characters PEP 503 treats as equivalent
// name separators.
var separatorRuns = regexp.MustCompile(`[-_.]+`)

// nameToken matches the leading bare package name of a requirement string,
// after any extras suffix has been removed.
var nameToken = regexp.MustCompile(`^[a-zA-Z0-9_-]+`)

// Normalize collapses runs of "-", "_" and "." into a single "-" and lower
// cases the result, per PEP 503.
func Normalize(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(name, "-"))
}

// ParseRequirement extracts the normalized package name from a requirement
// string such as "scanpy[cuda12]>=1.10". Returns "" when no valid name token
// is present; callers skip such entries silently.
func ParseRequirement(req string) string {
	// Remove extras like [cuda12]. Version specifiers terminate the name
	// token, so only the extras bracket needs explicit handling.
	if idx := strings.Index(req, "["); idx >= 0 {
		end := strings.Index(req, "]")
		if end > idx {
			req = req[:idx] + req[end+1:]
		} else {
			req = req[:idx]
		}
	}

	name := nameToken.FindString(strings.TrimSpace(req))
	if name == "" {
		return ""
	}
	return Normalize(name)
}
