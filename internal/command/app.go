// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/config"
	"github.com/pkgsync/pkgsync/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the pkgsync
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load() //nolint
	cfg.Namespace = ns
	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		Now:         time.Now,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "pkgsync",
		Usage: "Python package sync for HPC JupyterLab environments",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "pkgsync version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		syncCommandBuilder(m),
		snapshotCommandBuilder(m),
		diffCommandBuilder(m),
		jupyterConfigCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
