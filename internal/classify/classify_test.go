// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkgsync/pkgsync/internal/freeze"
	"github.com/pkgsync/pkgsync/internal/manifest"
)

// stubQuerier returns canned dependents per package name.
type stubQuerier struct {
	dependents map[string][]string
}

func (s stubQuerier) RequiredBy(_ context.Context, name, _ string) []string {
	return s.dependents[name]
}

// failingQuerier models a pip that always fails; the fail-open contract means
// it reports no dependents for everything.
type failingQuerier struct{}

func (failingQuerier) RequiredBy(_ context.Context, _, _ string) []string {
	return nil
}

func set(names ...string) manifest.Set {
	s := manifest.Set{}
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func declared(core, gpu, staged manifest.Set) manifest.Declared {
	return manifest.Declared{Core: core, GPU: gpu, Staged: staged}
}

func TestCategorize(t *testing.T) {
	installed := freeze.Installed{
		"numpy":        "2.0.1",
		"cupy-cuda12x": "13.0.0",
		"squidpy":      "1.4.1",
		"joblib":       "1.4.2",
		"igraph":       "0.11.5",
	}
	d := declared(set("numpy"), set("cupy-cuda12x"), set("squidpy"))
	q := stubQuerier{dependents: map[string][]string{
		"joblib": {"scanpy", "scikit-learn"},
	}}

	c := Categorize(context.Background(), installed, d, q)

	assert.Equal(t, freeze.Installed{"numpy": "2.0.1"}, c.Core)
	assert.Equal(t, freeze.Installed{"cupy-cuda12x": "13.0.0"}, c.GPU)
	assert.Equal(t, freeze.Installed{"squidpy": "1.4.1"}, c.Staged)
	assert.Equal(t, freeze.Installed{"joblib": "1.4.2"}, c.Transitive)
	assert.Equal(t, freeze.Installed{"igraph": "0.11.5"}, c.StagedNew)
	assert.Equal(t, []string{"scanpy", "scikit-learn"}, c.RequiredBy["joblib"])
}

func TestCategorize_PartitionProperty(t *testing.T) {
	installed := freeze.Installed{
		"a": "1", "b": "2", "c": "3", "d": "4", "e": "5", "f": "6",
	}
	d := declared(set("a", "b"), set("b", "c"), set("a", "d"))
	q := stubQuerier{dependents: map[string][]string{"e": {"a"}}}

	c := Categorize(context.Background(), installed, d, q)

	// Union of all buckets equals the installed key set.
	union := freeze.Installed{}
	for _, bucket := range []freeze.Installed{c.Core, c.GPU, c.Staged, c.StagedNew, c.Transitive} {
		for pkg, version := range bucket {
			_, duplicate := union[pkg]
			assert.False(t, duplicate, "package %s appears in more than one bucket", pkg)
			union[pkg] = version
		}
	}
	assert.Equal(t, installed, union)
	assert.Equal(t, len(installed), c.Total())
}

func TestCategorize_PriorityOrder(t *testing.T) {
	installed := freeze.Installed{"numpy": "2.0.1"}

	// Declared in both core and staged: core wins.
	c := Categorize(context.Background(), installed,
		declared(set("numpy"), set(), set("numpy")), nil)
	assert.Contains(t, c.Core, "numpy")
	assert.NotContains(t, c.Staged, "numpy")

	// Declared in both gpu and staged: gpu wins.
	c = Categorize(context.Background(), installed,
		declared(set(), set("numpy"), set("numpy")), nil)
	assert.Contains(t, c.GPU, "numpy")
	assert.NotContains(t, c.Staged, "numpy")
}

func TestCategorize_FailOpenNeverTransitive(t *testing.T) {
	installed := freeze.Installed{"x": "1.0", "y": "2.0"}

	c := Categorize(context.Background(), installed,
		declared(set(), set(), set()), failingQuerier{})

	assert.Empty(t, c.Transitive)
	assert.Equal(t, installed, c.StagedNew)
}

func TestCategorize_SkipTransitiveCheck(t *testing.T) {
	installed := freeze.Installed{"x": "1.0"}

	c := Categorize(context.Background(), installed,
		declared(set(), set(), set()), nil)

	assert.Equal(t, installed, c.StagedNew)
	assert.Empty(t, c.Transitive)
}

func TestFlatten(t *testing.T) {
	installed := freeze.Installed{"numpy": "2.0.1", "joblib": "1.4.2"}
	q := stubQuerier{dependents: map[string][]string{"joblib": {"scanpy"}}}

	c := Categorize(context.Background(), installed,
		declared(set("numpy"), set(), set()), q)

	rows := c.Flatten()
	assert.Len(t, rows, 2)

	byName := map[string]Row{}
	for _, row := range rows {
		byName[row.Package] = row
	}
	assert.Equal(t, "core", byName["numpy"].Category)
	assert.Equal(t, "transitive", byName["joblib"].Category)
	assert.Equal(t, []string{"scanpy"}, byName["joblib"].RequiredBy)
}
