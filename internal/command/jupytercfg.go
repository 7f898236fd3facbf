// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/config"
	"github.com/pkgsync/pkgsync/internal/jupytercfg"
	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/meta"
	"github.com/pkgsync/pkgsync/internal/util"
)

// jupyterConfigCommandAction renders the JupyterLab server configuration to
// stdout or --write.
func jupyterConfigCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: args=%v", m.Args[1:])

	config.Config.Namespace = "jupyter-config"

	settings := jupytercfg.DefaultSettings()
	if v := cmd.String("root-dir"); v != "" {
		settings.RootDir = v
	}
	if v := cmd.String("ip"); v != "" {
		settings.IP = v
	}
	settings.AllowRoot = cmd.Bool("allow-root")

	body, err := jupytercfg.Render(settings)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if path := cmd.String("write"); path != "" {
		expanded, err := util.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("invalid write path: %w", err)
		}
		if err := os.WriteFile(expanded, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Config written to: %s\n", path)
		return nil
	}

	fmt.Fprint(os.Stdout, body)
	return nil
}

// jupyterConfigCommandBuilder constructs the cli.Command for "jupyter-config".
func jupyterConfigCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "jupyter-config",
		Usage:     "emit the JupyterLab server configuration",
		UsageText: "pkgsync jupyter-config [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "allow-root",
				Usage: "permit the server to run as root",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "ip",
				Usage: "bind address",
			},
			&cli.StringFlag{
				Name:  "root-dir",
				Usage: "server root and notebook directory",
			},
			&cli.StringFlag{
				Name:  "write",
				Usage: "write the config to this path instead of stdout",
			},
		},
		Action: jupyterConfigCommandAction,
	}
}
