// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/meta"
	"github.com/s3cli/s3cli/internal/store"
)

// getCommandAction downloads --key from --bucket into --dir.
func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireNonEmpty(cmd, "bucket", "key"); err != nil {
		return err
	}

	s, err := NewStore(ctx, cmd, store.WithDir(cmd.String("dir")))
	if err != nil {
		return err
	}

	res, err := s.GetObject(ctx, cmd.String("bucket"), cmd.String("key"))
	if err != nil {
		return err
	}
	return Emit(cmd, res.Message, res, nil)
}

func getCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "get",
		Usage:     "download an object to a local file",
		UsageText: "s3cli get --bucket NAME --key KEY [--dir DIR] [options]",
		Flags: []cli.Flag{
			NewBucketFlag(true),
			NewKeyFlag(true),
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory the object is written to",
				Value:   ".",
				Sources: sourceChain("get", meta.Config.Source, "dir"),
			},
		},
		Action:  getCommandAction,
		Meta:    meta,
		Session: true,
	}).Build()
}
