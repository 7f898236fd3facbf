// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package pip wraps the pip show subprocess used to discover reverse
// dependencies. The lookup is advisory: every failure mode (missing binary,
// nonzero exit, timeout, absent field) degrades to "no dependents" so a
// broken pip can never fail a sync run.
package pip

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkgsync/pkgsync/internal/cacheutil"
	"github.com/pkgsync/pkgsync/internal/log"
)

// DefaultTimeout bounds a single pip show invocation.
const DefaultTimeout = 10 * time.Second

// cacheSubdirs is where pip show output lives under the cache base.
var cacheSubdirs = []string{"pip"}

// Querier reports the packages that require a given installed package.
// version participates only in cache keying so that rebuilt environments do
// not reuse stale metadata.
type Querier interface {
	RequiredBy(ctx context.Context, name, version string) []string
}

// CLI is the pip show backed Querier.
type CLI struct {
	// Command overrides the pip executable, e.g. "pip3". Empty means "pip".
	Command string
	// Timeout bounds each invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// RequiredBy shells out to pip show and extracts the Required-by field.
// Returns nil on any failure.
func (c CLI) RequiredBy(ctx context.Context, name, version string) []string {
	key := "show:" + name + "==" + version
	if entry, ok := cacheutil.Read(cacheSubdirs, key); ok {
		return parseRequiredBy(string(entry.Data))
	}

	command := c.Command
	if command == "" {
		command = "pip"
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, command, "show", name).Output()
	if err != nil {
		log.Debugf("pip show failed: pkg=%s, err=%v", name, err)
		return nil
	}

	if err := cacheutil.Write(cacheSubdirs, key, out); err != nil {
		log.Debugf("cache write failed: key=%s, err=%v", key, err)
	}

	return parseRequiredBy(string(out))
}

// parseRequiredBy extracts dependent package names from pip show output.
// An absent or empty Required-by field yields nil.
func parseRequiredBy(output string) []string {
	for _, line := range strings.Split(output, "\n") {
		rest, found := strings.CutPrefix(line, "Required-by:")
		if !found {
			continue
		}

		var deps []string
		for _, dep := range strings.Split(rest, ",") {
			if dep = strings.TrimSpace(dep); dep != "" {
				deps = append(deps, dep)
			}
		}
		return deps
	}
	return nil
}
