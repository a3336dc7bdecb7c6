// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var schemaFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "schema",
	Usage:       "dump the attributes available to --attrs, --filter and --sort",
	HideDefault: true,
}

// NewSessionFlags returns the flags that shape the AWS session and existence
// checks. ns is the command name used to namespace config lookups and path is
// the config file.
func NewSessionFlags(ns, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "custom S3 endpoint URL",
			Sources: sourceChain(ns, path, "endpoint", "S3CLI_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    "lookup",
			Usage:   "how bucket and key existence is checked (head|scan)",
			Value:   "head",
			Sources: sourceChain(ns, path, "lookup"),
			Validator: func(value string) error {
				return FlagValidators(value, LookupValidator)
			},
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "shared config profile",
			Sources: sourceChain(ns, path, "profile", "S3CLI_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region. Overrides the environment and profile",
			Sources: sourceChain(ns, path, "region", "S3CLI_REGION"),
		},
		NewTimeoutFlag(ns, path),
	}
}

// NewTimeoutFlag returns --timeout, a deadline for the whole command.
func NewTimeoutFlag(ns, path string) cli.Flag {
	return &cli.DurationFlag{
		Name:    "timeout",
		Usage:   "deadline for the whole command, 0 for none",
		Sources: sourceChain(ns, path, "timeout"),
	}
}

// NewOutputFlag returns the --output flag carried by every command.
func NewOutputFlag(ns, path string) cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text|json|yaml|raw)",
		Value:   "text",
		Sources: sourceChain(ns, path, "output"),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
}

// NewListingFlags returns the flags that shape tabular listings.
func NewListingFlags(ns, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
			Sources: sourceChain(ns, path, "color"),
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "comma-separated list of filters to apply to results",
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Value:   2,
			Sources: sourceChain(ns, path, "padding"),
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: sourceChain(ns, path, "sort"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
			Sources: sourceChain(ns, path, "titles"),
		},
		schemaFlag,
	}
}

// NewBucketFlag returns --bucket. Commands other than list require it.
func NewBucketFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "bucket",
		Aliases:  []string{"b"},
		Usage:    "bucket name",
		Required: required,
	}
}

// NewKeyFlag returns --key.
func NewKeyFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "key",
		Aliases:  []string{"k"},
		Usage:    "object key",
		Required: required,
	}
}

// sourceChain builds a value source chain of env vars followed by the
// namespaced and global keys of the config file.
func sourceChain(ns, path, key string, envs ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, e := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(e))
	}
	chain.Chain = append(chain.Chain, configSources(ns, path, key)...)
	return chain
}

// configSources returns the namespaced and global config file sources for
// key. Nothing is returned when there is no config file.
func configSources(ns, path, key string) []cli.ValueSource {
	if path == "" {
		return nil
	}

	var sources []cli.ValueSource
	if ns != "" {
		sources = append(sources, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	sources = append(sources, yaml.YAML(key, altsrc.StringSourcer(path)))
	return sources
}
