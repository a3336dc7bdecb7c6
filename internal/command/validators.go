// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/output"
	"github.com/s3cli/s3cli/internal/store"
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

func OutputValidator(value any) error {
	return oneOf(value, output.Formats)
}

func LookupValidator(value any) error {
	return oneOf(value, store.LookupModes)
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}

// RequireNonEmpty rejects required flags that were given an empty value, which
// urfave/cli accepts as set.
func RequireNonEmpty(cmd *cli.Command, names ...string) error {
	for _, name := range names {
		if strings.TrimSpace(cmd.String(name)) == "" {
			return apperr.MissingArgument(name)
		}
	}
	return nil
}
