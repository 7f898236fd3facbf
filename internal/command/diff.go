// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/pkgsync/pkgsync/internal/config"
	"github.com/pkgsync/pkgsync/internal/freeze"
	"github.com/pkgsync/pkgsync/internal/log"
	"github.com/pkgsync/pkgsync/internal/meta"
	"github.com/pkgsync/pkgsync/internal/util"
)

// diffCommandAction compares two package listings and prints the delta.
// Either side may be a freeze listing or a previously written snapshot.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: args=%v", m.Args[1:])

	config.Config.Namespace = "diff"

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("diff requires exactly two listing files")
	}

	return runDiff(cmd, args[0], args[1], os.Stdout)
}

// runDiff loads both listings and renders their delta to w.
func runDiff(cmd *cli.Command, beforePath, afterPath string, w io.Writer) error {
	before, err := loadListing(beforePath)
	if err != nil {
		return err
	}
	after, err := loadListing(afterPath)
	if err != nil {
		return err
	}

	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	delta, err := gojsondiff.New().Compare(beforeJSON, afterJSON)
	if err != nil {
		return fmt.Errorf("failed to compare listings: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The listings are identical.")
		return nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(beforeJSON, &left); err != nil {
		return fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	diffString, err := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       cmd.Bool("color"),
	}).Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprint(w, diffString)
	return nil
}

// loadListing reads a freeze listing or a TOML snapshot into the installed
// mapping. Snapshots are recognized by their [packages] table.
func loadListing(path string) (freeze.Installed, error) {
	expanded, err := util.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid listing path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing file: %w", err)
	}

	if bytes.Contains(data, []byte("[packages]")) {
		var snapshot struct {
			Packages map[string]string `toml:"packages"`
		}
		if err := toml.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
		}
		return snapshot.Packages, nil
	}

	return freeze.Parse(bytes.NewReader(data))
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two freeze listings or snapshots",
		UsageText: "pkgsync diff BEFORE AFTER [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "color",
				Usage: "enable colored diff output",
				Value: false,
			},
		},
		Action: diffCommandAction,
	}
}
