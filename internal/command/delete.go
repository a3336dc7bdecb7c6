// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/meta"
	"github.com/s3cli/s3cli/internal/store"
)

// deleteCommandAction deletes --key from --bucket, or the empty bucket itself
// when no key is given.
func deleteCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireNonEmpty(cmd, "bucket"); err != nil {
		return err
	}
	if cmd.IsSet("key") {
		if err := RequireNonEmpty(cmd, "key"); err != nil {
			return err
		}
	}

	s, err := NewStore(ctx, cmd)
	if err != nil {
		return err
	}

	var res *store.Result
	if cmd.IsSet("key") {
		res, err = s.DeleteObject(ctx, cmd.String("bucket"), cmd.String("key"))
	} else {
		res, err = s.DeleteBucket(ctx, cmd.String("bucket"))
	}
	if err != nil {
		return err
	}
	return Emit(cmd, res.Message, res, nil)
}

func deleteCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "delete",
		Usage:     "delete an object, or an empty bucket",
		UsageText: "s3cli delete --bucket NAME [--key KEY] [options]",
		Flags: []cli.Flag{
			NewBucketFlag(true),
			NewKeyFlag(false),
		},
		Action:  deleteCommandAction,
		Meta:    meta,
		Session: true,
	}).Build()
}
