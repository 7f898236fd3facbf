// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads the declared dependency groups out of a
// pyproject.toml: [project].dependencies (core) and the gpu/staged entries
// of [project.optional-dependencies].
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/pypi"
)

// Set is a set of normalized package names.
type Set map[string]struct{}

// Has reports membership of an already-normalized name.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Declared holds the three declared dependency groups as disjoint name sets.
// A name appearing in more than one group is still recorded in each; the
// classifier's priority order resolves the overlap.
type Declared struct {
	Core   Set
	GPU    Set
	Staged Set
}

// document mirrors the subset of pyproject.toml that pkgsync consumes.
type document struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// Load reads and parses a pyproject.toml into the declared sets. Entries
// without an extractable name are skipped silently.
func Load(path string) (Declared, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Declared{}, fmt.Errorf("failed to open pyproject file: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Declared{}, fmt.Errorf("failed to parse pyproject file: %w", err)
	}

	declared := Declared{
		Core:   requirementSet(doc.Project.Dependencies),
		GPU:    requirementSet(doc.Project.OptionalDependencies["gpu"]),
		Staged: requirementSet(doc.Project.OptionalDependencies["staged"]),
	}
	log.Debugf("manifest loaded: core=%d, gpu=%d, staged=%d",
		len(declared.Core), len(declared.GPU), len(declared.Staged))

	return declared, nil
}

// requirementSet extracts normalized names from a dependency list.
func requirementSet(reqs []string) Set {
	set := Set{}
	for _, req := range reqs {
		name := pypi.ParseRequirement(req)
		if name == "" {
			log.Debugf("skipping unparseable requirement: req=%q", req)
			continue
		}
		set[name] = struct{}{}
	}
	return set
}
