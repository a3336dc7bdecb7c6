// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/meta"
)

// createCommandAction creates --bucket in the session region.
func createCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireNonEmpty(cmd, "bucket"); err != nil {
		return err
	}

	s, err := NewStore(ctx, cmd)
	if err != nil {
		return err
	}

	res, err := s.CreateBucket(ctx, cmd.String("bucket"), "")
	if err != nil {
		return err
	}
	return Emit(cmd, res.Message, res, nil)
}

func createCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "create",
		Usage:     "create a bucket",
		UsageText: "s3cli create --bucket NAME [options]",
		Flags: []cli.Flag{
			NewBucketFlag(true),
		},
		Action:  createCommandAction,
		Meta:    meta,
		Session: true,
	}).Build()
}
