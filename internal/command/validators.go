// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

func FormatValidator(value any) error {
	var validFormatFlagValues = []string{"text", "json", "yaml", "table"}
	valid := false
	for _, v := range validFormatFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validFormatFlagValues)
	}
	return nil
}
