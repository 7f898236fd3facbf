// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pkgsync/pkgsync/internal/cacheutil"
	"github.com/pkgsync/pkgsync/internal/command"
	"github.com/pkgsync/pkgsync/internal/config"
	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks whether the first argument is --version/-v and returns
// whether it was handled. Only the first argument counts: sync carries its
// own --version flag for the Bioconductor release label.
func handleVersion(args []string) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Println(version.Version)
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// injectDefaults expands the `<cmd>.defaults` arg set from the config file
// immediately after the subcommand, so explicit flags given later win.
func injectDefaults(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	entries, _ := config.GetStringSlice(args[1] + ".defaults")
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}
	log.Debugf("defaults injected: cmd=%s, args=%v", args[1], expanded)

	return append(args[:2], append(expanded, args[2:]...)...)
}

// deduplicateFlags removes earlier occurrences of a repeated flag so the last
// one wins. This keeps config-injected defaults overridable on the command
// line. Positional arguments are preserved in place.
func deduplicateFlags(args []string) []string {
	last := map[string]int{}
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			continue
		}
		name := a
		if eq := strings.Index(a, "="); eq != -1 {
			name = a[:eq]
		}
		last[name] = i
	}

	drop := map[int]bool{}
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			continue
		}
		name := a
		if eq := strings.Index(a, "="); eq != -1 {
			name = a[:eq]
		}
		if last[name] != i {
			drop[i] = true
			// Drop the flag's value too when given as a separate token.
			if !strings.Contains(a, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				drop[i+1] = true
			}
		}
	}

	result := make([]string, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			result = append(result, a)
		}
	}
	return result
}

// initAndRunApp initializes the app and runs it, returning the exit code.
// A run that finds new staged candidates exits 1 so CI jobs can flag the
// freeze for review; all other run failures exit 2.
func initAndRunApp(args []string) int {
	// Pre-create the cache directory used by the pip reverse-dependency query.
	if _, _, err := cacheutil.EnsureBaseDir(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	// Drop cached pip metadata older than the configured retention.
	if hours, err := config.GetInt("cache.hours", 0); err == nil && hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrStagedCandidates) {
			// The report already explains what was found.
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip argument processing and let the CLI
	// handle it.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return initAndRunApp(args)
		}
	}

	args = deduplicateFlags(injectDefaults(args))
	log.Debugf("args after defaults: args=%v", args)

	return initAndRunApp(args)
}
