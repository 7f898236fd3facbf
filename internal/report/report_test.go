// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkgsync/pkgsync/internal/classify"
	"github.com/pkgsync/pkgsync/internal/freeze"
)

var stamp = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestRender(t *testing.T) {
	c := classify.Categories{
		Core:       freeze.Installed{"numpy": "2.0.1", "pandas": "2.2.2"},
		GPU:        freeze.Installed{"cupy-cuda12x": "13.0.0"},
		Staged:     freeze.Installed{},
		StagedNew:  freeze.Installed{"igraph": "0.11.5"},
		Transitive: freeze.Installed{"joblib": "1.4.2"},
	}

	got := Render(c, "gemini", "3.19", stamp)

	assert.Equal(t, strings.Join([]string{
		"=== Python Package Sync Report ===",
		"Cluster: gemini",
		"Bioc Version: 3.19",
		"Date: 2026-03-14 09:26",
		"",
		"CORE PACKAGES (2 installed):",
		"  numpy                          2.0.1",
		"  pandas                         2.2.2",
		"",
		"GPU PACKAGES (1 installed):",
		"  cupy-cuda12x                   13.0.0",
		"",
		"STAGED PACKAGES (0 existing):",
		"  (none)",
		"",
		"NEW STAGED CANDIDATES (1 found):",
		"  These packages are installed but not in pyproject.toml:",
		"  igraph                         0.11.5  <- consider adding to [staged]",
		"",
		"TRANSITIVE DEPENDENCIES (1 packages):",
		"  (auto-installed, no action needed)",
		"",
		"TOTAL: 5 packages installed",
	}, "\n"), got)
}

func TestRender_NoCandidates(t *testing.T) {
	c := classify.Categories{
		Core: freeze.Installed{"numpy": "2.0.1"},
	}

	got := Render(c, "gemini", "3.19", stamp)

	assert.Contains(t, got, "NEW STAGED CANDIDATES (0 found):")
	assert.Contains(t, got, "  (none - all top-level packages are declared)")
	assert.NotContains(t, got, "consider adding")
	assert.Contains(t, got, "TOTAL: 1 packages installed")
}

func TestSnapshot(t *testing.T) {
	installed := freeze.Installed{
		"scanpy": "1.10.2",
		"numpy":  "2.0.1",
	}

	got := Snapshot(installed, "gemini", "3.19", stamp)

	assert.Equal(t, strings.Join([]string{
		"# Python package snapshot",
		"# Cluster: gemini",
		"# Bioc Version: 3.19",
		"# Date: 2026-03-14 09:26",
		"# Packages: 2",
		"",
		"[packages]",
		`numpy = "2.0.1"`,
		`scanpy = "1.10.2"`,
	}, "\n"), got)
}

func TestSnapshot_Empty(t *testing.T) {
	got := Snapshot(freeze.Installed{}, "gemini", "3.19", stamp)
	assert.True(t, strings.HasSuffix(got, "[packages]"))
	assert.Contains(t, got, "# Packages: 0")
}
