// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/meta"
)

// CommandBuilder constructs a subcommand in a consistent pattern. It wires
// metadata, adds the --output flag and, as asked, the session and listing
// flags, and runs the action under the --timeout deadline.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta

	// Session adds the AWS session flags, --timeout included.
	Session bool
	// Listing adds the table, sort, filter and schema flags.
	Listing bool
	// Timeout adds --timeout to a command without session flags.
	Timeout bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	path := cb.Meta.Config.Source

	flags := append([]cli.Flag{}, cb.Flags...)
	flags = append(flags, NewOutputFlag(cb.Name, path))
	if cb.Session {
		flags = append(flags, NewSessionFlags(cb.Name, path)...)
	} else if cb.Timeout {
		flags = append(flags, NewTimeoutFlag(cb.Name, path))
	}
	if cb.Listing {
		flags = append(flags, NewListingFlags(cb.Name, path)...)
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(flags, func(i, j int) bool {
		return flags[i].Names()[0] < flags[j].Names()[0]
	})

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:  flags,
		Action: WithTimeout(NoArgs(cb.Action)),
	}
}
