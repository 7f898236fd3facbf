// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package classify partitions the installed package set against the declared
// dependency groups. The buckets are mutually exclusive and together cover
// every installed package.
package classify

import (
	"context"

	"github.com/pkgsync/pkgsync/internal/freeze"
	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/manifest"
	"github.com/pkgsync/pkgsync/internal/pip"
)

// Categories is the partition of the installed set. StagedNew holds
// undeclared top-level packages (nothing depends on them); Transitive holds
// undeclared packages with at least one dependent. RequiredBy records the
// dependents discovered for transitive packages.
type Categories struct {
	Core       freeze.Installed
	GPU        freeze.Installed
	Staged     freeze.Installed
	StagedNew  freeze.Installed
	Transitive freeze.Installed
	RequiredBy map[string][]string
}

// Row is one installed package flattened for the output framework.
type Row struct {
	Package    string   `json:"package"`
	Version    string   `json:"version"`
	Category   string   `json:"category"`
	RequiredBy []string `json:"required_by,omitempty"`
}

// Categorize classifies each installed package. Priority order: core, gpu,
// staged, then the reverse-dependency check decides transitive vs staged_new.
// A nil querier skips the check, in which case every undeclared package is a
// staged candidate.
func Categorize(ctx context.Context, installed freeze.Installed, declared manifest.Declared, querier pip.Querier) Categories {
	categories := Categories{
		Core:       freeze.Installed{},
		GPU:        freeze.Installed{},
		Staged:     freeze.Installed{},
		StagedNew:  freeze.Installed{},
		Transitive: freeze.Installed{},
		RequiredBy: map[string][]string{},
	}

	for pkg, version := range installed {
		switch {
		case declared.Core.Has(pkg):
			categories.Core[pkg] = version
		case declared.GPU.Has(pkg):
			categories.GPU[pkg] = version
		case declared.Staged.Has(pkg):
			categories.Staged[pkg] = version
		case querier != nil:
			if requiredBy := querier.RequiredBy(ctx, pkg, version); len(requiredBy) > 0 {
				categories.Transitive[pkg] = version
				categories.RequiredBy[pkg] = requiredBy
			} else {
				categories.StagedNew[pkg] = version
			}
		default:
			// Without the transitive check, assume undeclared packages are
			// candidates.
			categories.StagedNew[pkg] = version
		}
	}

	log.Debugf("categorized: core=%d, gpu=%d, staged=%d, staged_new=%d, transitive=%d",
		len(categories.Core), len(categories.GPU), len(categories.Staged),
		len(categories.StagedNew), len(categories.Transitive))

	return categories
}

// Total returns the number of packages across all buckets.
func (c Categories) Total() int {
	return len(c.Core) + len(c.GPU) + len(c.Staged) + len(c.StagedNew) + len(c.Transitive)
}

// Flatten returns one row per installed package for the output framework.
// Row order is unspecified; the framework sorts.
func (c Categories) Flatten() []Row {
	rows := make([]Row, 0, c.Total())
	for category, bucket := range map[string]freeze.Installed{
		"core":       c.Core,
		"gpu":        c.GPU,
		"staged":     c.Staged,
		"staged_new": c.StagedNew,
		"transitive": c.Transitive,
	} {
		for pkg, version := range bucket {
			rows = append(rows, Row{
				Package:    pkg,
				Version:    version,
				Category:   category,
				RequiredBy: c.RequiredBy[pkg],
			})
		}
	}
	return rows
}
