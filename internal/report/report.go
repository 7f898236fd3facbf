// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package report renders the human-readable sync report and the TOML
// snapshot of installed packages. Both renderers are pure functions of their
// inputs; the timestamp arrives as a parameter so tests stay deterministic.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkgsync/pkgsync/internal/classify"
	"github.com/pkgsync/pkgsync/internal/freeze"
)

// stampLayout is the minute-resolution timestamp used in report and snapshot
// headers.
const stampLayout = "2006-01-02 15:04"

// Render produces the fixed-section text report. Sections are always present
// and package lines are sorted by name so diffs between runs stay readable.
func Render(c classify.Categories, cluster, biocVersion string, now time.Time) string {
	lines := []string{
		"=== Python Package Sync Report ===",
		"Cluster: " + cluster,
		"Bioc Version: " + biocVersion,
		"Date: " + now.Format(stampLayout),
		"",
	}

	lines = append(lines, fmt.Sprintf("CORE PACKAGES (%d installed):", len(c.Core)))
	lines = append(lines, packageLines(c.Core, "", "  (none)")...)
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("GPU PACKAGES (%d installed):", len(c.GPU)))
	lines = append(lines, packageLines(c.GPU, "", "  (none)")...)
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("STAGED PACKAGES (%d existing):", len(c.Staged)))
	lines = append(lines, packageLines(c.Staged, "", "  (none)")...)
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("NEW STAGED CANDIDATES (%d found):", len(c.StagedNew)))
	if len(c.StagedNew) > 0 {
		lines = append(lines, "  These packages are installed but not in pyproject.toml:")
		lines = append(lines, packageLines(c.StagedNew, "  <- consider adding to [staged]", "")...)
	} else {
		lines = append(lines, "  (none - all top-level packages are declared)")
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("TRANSITIVE DEPENDENCIES (%d packages):", len(c.Transitive)))
	lines = append(lines, "  (auto-installed, no action needed)")
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("TOTAL: %d packages installed", c.Total()))

	return strings.Join(lines, "\n")
}

// Snapshot produces the TOML snapshot block: header comments followed by a
// [packages] table, one quoted version per package, sorted by name.
func Snapshot(installed freeze.Installed, cluster, biocVersion string, now time.Time) string {
	lines := []string{
		"# Python package snapshot",
		"# Cluster: " + cluster,
		"# Bioc Version: " + biocVersion,
		"# Date: " + now.Format(stampLayout),
		fmt.Sprintf("# Packages: %d", len(installed)),
		"",
		"[packages]",
	}

	for _, pkg := range sortedNames(installed) {
		lines = append(lines, fmt.Sprintf("%s = %q", pkg, installed[pkg]))
	}

	return strings.Join(lines, "\n")
}

// packageLines renders one aligned "name version" line per package, sorted by
// name. suffix is appended to each line; empty renders as the given
// placeholder line instead.
func packageLines(bucket freeze.Installed, suffix, placeholder string) []string {
	if len(bucket) == 0 {
		if placeholder == "" {
			return nil
		}
		return []string{placeholder}
	}

	lines := make([]string, 0, len(bucket))
	for _, pkg := range sortedNames(bucket) {
		lines = append(lines, fmt.Sprintf("  %-30s %s%s", pkg, bucket[pkg], suffix))
	}
	return lines
}

// sortedNames returns the bucket's package names in lexical order.
func sortedNames(bucket freeze.Installed) []string {
	names := make([]string, 0, len(bucket))
	for pkg := range bucket {
		names = append(names, pkg)
	}
	sort.Strings(names)
	return names
}
