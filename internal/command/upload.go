// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/meta"
	"github.com/s3cli/s3cli/internal/store"
)

// uploadCommandAction uploads --filepath to --bucket, keyed by its base name.
// A missing bucket is created unless --no-create is set.
func uploadCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireNonEmpty(cmd, "bucket", "filepath"); err != nil {
		return err
	}

	s, err := NewStore(ctx, cmd, store.WithAutoCreate(!cmd.Bool("no-create")))
	if err != nil {
		return err
	}

	res, err := s.UploadObject(ctx, cmd.String("bucket"), cmd.String("filepath"))
	if err != nil {
		return err
	}
	return Emit(cmd, res.Message, res, nil)
}

func uploadCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "upload",
		Usage:     "upload a file to a bucket",
		UsageText: "s3cli upload --bucket NAME --filepath PATH [options]",
		Flags: []cli.Flag{
			NewBucketFlag(true),
			&cli.StringFlag{
				Name:     "filepath",
				Aliases:  []string{"f"},
				Usage:    "local file to upload",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "no-create",
				Usage:   "fail instead of creating a missing bucket",
				Sources: sourceChain("upload", meta.Config.Source, "no-create"),
			},
		},
		Action:  uploadCommandAction,
		Meta:    meta,
		Session: true,
	}).Build()
}
