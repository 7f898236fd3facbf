// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/config"
	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/meta"
	"github.com/pkgsync/pkgsync/internal/report"
)

// snapshotCommandAction renders the TOML snapshot for a freeze listing
// without classifying anything. With no --output or --s3-uri the snapshot
// goes to stdout.
func snapshotCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: args=%v", m.Args[1:])

	config.Config.Namespace = "snapshot"

	return runSnapshot(ctx, cmd, m, os.Stdout)
}

// runSnapshot is the snapshot pipeline with the output writer injected for
// tests.
func runSnapshot(ctx context.Context, cmd *cli.Command, m meta.Meta, w io.Writer) error {
	installed, err := loadFreeze(cmd)
	if err != nil {
		return err
	}

	body := report.Snapshot(installed, cmd.String("cluster"), cmd.String("version"), NowFrom(m))

	if cmd.String("output") == "" && cmd.String("s3-uri") == "" {
		fmt.Fprintln(w, body)
		return nil
	}

	return writeSnapshot(ctx, cmd, body)
}

// snapshotCommandBuilder constructs the cli.Command for "snapshot".
func snapshotCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "write a TOML snapshot of installed packages",
		UsageText: "pkgsync snapshot --freeze FILE [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "freeze",
				Usage:    "pip freeze listing file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "snapshot destination path (default stdout)",
			},
			&cli.StringFlag{
				Name:  "s3-uri",
				Usage: "upload the snapshot to this s3://bucket/key location",
			},
			NewClusterFlag("snapshot"),
			NewVersionFlag("snapshot"),
		},
		Action: snapshotCommandAction,
	}
}
