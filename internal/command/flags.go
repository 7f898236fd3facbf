// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/config"
)

// NewGlobalFlags returns the output-shaping flags shared by every command
// that emits a package dataset.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:  "color",
			Usage: "enable colored table output",
			Value: false,
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"F"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "inter-column padding for table output",
			Value: 2,
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "comma-separated list of attributes to sort the results by",
			Value: "package",
		},
		&cli.BoolFlag{
			Name:  "titles",
			Usage: "show column titles with table output",
			Value: false,
		},
	}

	return
}

// NewClusterFlag constructs the "cluster" label flag, sourced from the
// environment and, when a config file is present, from `<ns>.cluster` or the
// top-level `cluster` key.
func NewClusterFlag(ns string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "cluster",
		Usage: "cluster name label for reports and snapshots",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("PKGSYNC_CLUSTER"),
		),
		Value: "unknown",
	}

	if config.Config.Source != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, config.Config.Source, flag)
	}

	return flag
}

// NewVersionFlag constructs the "version" label flag (the Bioconductor
// release the environment was built for). This is a plain label and distinct
// from the binary's own --version handling in main.
func NewVersionFlag(ns string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "version",
		Usage: "Bioconductor release label for reports and snapshots",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("PKGSYNC_VERSION"),
		),
		Value: "unknown",
	}

	if config.Config.Source != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, config.Config.Source, flag)
	}

	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
