// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/classify"
	"github.com/pkgsync/pkgsync/internal/config"
	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/manifest"
	"github.com/pkgsync/pkgsync/internal/meta"
	"github.com/pkgsync/pkgsync/internal/pip"
	"github.com/pkgsync/pkgsync/internal/report"
	"github.com/pkgsync/pkgsync/internal/util"
)

// ErrStagedCandidates signals that undeclared top-level packages were found.
// main maps it to exit code 1; the report itself has already been printed.
var ErrStagedCandidates = errors.New("new staged candidates found")

// syncCommandAction is the action handler for the "sync" subcommand. It
// parses the freeze listing and pyproject manifest, classifies every
// installed package, renders the report (or the requested dataset format),
// optionally persists a snapshot, and surfaces staged candidates via
// ErrStagedCandidates.
func syncCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: args=%v", m.Args[1:])

	config.Config.Namespace = "sync"

	return runSync(ctx, cmd, m, os.Stdout)
}

// runSync is the sync pipeline with the output writer injected for tests.
func runSync(ctx context.Context, cmd *cli.Command, m meta.Meta, w io.Writer) error {
	installed, err := loadFreeze(cmd)
	if err != nil {
		return err
	}

	pyprojectPath, err := util.ExpandPath(cmd.String("pyproject"))
	if err != nil {
		return fmt.Errorf("invalid pyproject path: %w", err)
	}
	declared, err := manifest.Load(pyprojectPath)
	if err != nil {
		return err
	}

	categories := classify.Categorize(ctx, installed, declared, newQuerier(cmd))

	cluster := cmd.String("cluster")
	biocVersion := cmd.String("version")
	now := NowFrom(m)

	switch cmd.String("format") {
	case "text":
		fmt.Fprintln(w, report.Render(categories, cluster, biocVersion, now))
	default:
		al := BuildAttrs(cmd, "package", "version", "category", "required_by")
		if err := EmitRows(categories, al, cmd, w); err != nil {
			return err
		}
	}

	if cmd.String("output") != "" || cmd.String("s3-uri") != "" {
		body := report.Snapshot(installed, cluster, biocVersion, now)
		if err := writeSnapshot(ctx, cmd, body); err != nil {
			return err
		}
	}

	if len(categories.StagedNew) > 0 {
		return ErrStagedCandidates
	}
	return nil
}

// newQuerier builds the reverse-dependency querier, or nil when the check is
// disabled. The per-invocation timeout can be tuned via the pip.timeout
// config key (seconds).
func newQuerier(cmd *cli.Command) pip.Querier {
	if cmd.Bool("skip-transitive-check") {
		log.Debugf("transitive check skipped")
		return nil
	}

	timeout := pip.DefaultTimeout
	if secs, err := config.GetInt("pip.timeout"); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	pipCmd, _ := config.GetString("pip.command", "pip")
	return pip.CLI{Command: pipCmd, Timeout: timeout}
}

// syncCommandBuilder constructs the cli.Command for "sync", wiring metadata,
// flags, and action/validator handlers.
func syncCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "compare installed packages against pyproject.toml",
		UsageText: "pkgsync sync --freeze FILE --pyproject FILE [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "freeze",
				Usage:    "pip freeze listing file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "pyproject",
				Usage:    "pyproject.toml manifest file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write a TOML snapshot of installed packages to this path",
			},
			&cli.StringFlag{
				Name:  "s3-uri",
				Usage: "upload the snapshot to this s3://bucket/key location",
			},
			&cli.BoolFlag{
				Name:  "skip-transitive-check",
				Usage: "do not query pip for reverse dependencies",
				Value: false,
			},
			NewClusterFlag("sync"),
			NewVersionFlag("sync"),
		}, NewGlobalFlags("sync")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: syncCommandAction,
	}
}
