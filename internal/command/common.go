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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/attrs"
	"github.com/pkgsync/pkgsync/internal/awsutil"
	"github.com/pkgsync/pkgsync/internal/classify"
	"github.com/pkgsync/pkgsync/internal/freeze"
	"github.com/pkgsync/pkgsync/internal/meta"
	"github.com/pkgsync/pkgsync/internal/output"
	"github.com/pkgsync/pkgsync/internal/util"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitRows marshals the categorized rows and passes them through the common
// output routine (filter, transform, sort, render).
func EmitRows(c classify.Categories, al attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	var raw bytes.Buffer
	rows, err := json.Marshal(c.Flatten())
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	raw.Write(rows)

	output.SliceDiceSpit(raw, al, cmd, w, nil)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NowFrom returns the meta's injected clock, falling back to time.Now.
func NowFrom(m meta.Meta) time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// loadFreeze expands and parses the --freeze listing named by the flag.
func loadFreeze(cmd *cli.Command) (freeze.Installed, error) {
	path, err := util.ExpandPath(cmd.String("freeze"))
	if err != nil {
		return nil, fmt.Errorf("invalid freeze path: %w", err)
	}
	return freeze.ParseFile(path)
}

// writeSnapshot persists the rendered snapshot locally and, when an s3 uri is
// given, uploads it as well.
func writeSnapshot(ctx context.Context, cmd *cli.Command, body string) error {
	if path := cmd.String("output"); path != "" {
		expanded, err := util.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("invalid output path: %w", err)
		}
		if err := os.WriteFile(expanded, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Snapshot written to: %s\n", path)
	}

	if uri := cmd.String("s3-uri"); uri != "" {
		cfg, err := awsutil.LoadAWSConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load aws config: %w", err)
		}
		if err := awsutil.Upload(ctx, awsutil.NewS3(cfg), uri, []byte(body)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Snapshot uploaded to: %s\n", uri)
	}

	return nil
}
