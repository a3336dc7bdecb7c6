// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/filters"
	"github.com/s3cli/s3cli/internal/meta"
	"github.com/s3cli/s3cli/internal/store"
)

var (
	bucketDefaultAttrs = []string{"name", "creation_date"}
	objectDefaultAttrs = []string{"key", "size", "last_modified", "storage_class"}
)

// listCommandAction lists buckets, or the objects of --bucket when given.
func listCommandAction(ctx context.Context, cmd *cli.Command) error {
	if !cmd.IsSet("bucket") {
		return NewListActionRunner(
			reflect.TypeOf(store.Bucket{}),
			bucketDefaultAttrs,
			func(n int) string { return fmt.Sprintf("Found %d buckets.", n) },
			func(ctx context.Context, cmd *cli.Command) ([]store.Bucket, error) {
				s, err := NewStore(ctx, cmd)
				if err != nil {
					return nil, err
				}
				return s.ListBuckets(ctx)
			},
		).Run(ctx, cmd)
	}

	if err := RequireNonEmpty(cmd, "bucket"); err != nil {
		return err
	}
	bucket := cmd.String("bucket")

	return NewListActionRunner(
		reflect.TypeOf(store.Object{}),
		objectDefaultAttrs,
		func(n int) string { return fmt.Sprintf("Found %d objects in bucket %s.", n, bucket) },
		func(ctx context.Context, cmd *cli.Command) ([]store.Object, error) {
			s, err := NewStore(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return s.ListObjects(ctx, bucket, listOptions(cmd)...)
		},
	).Run(ctx, cmd)
}

// listOptions folds server-side filters from --filter into the listing
// request.
func listOptions(cmd *cli.Command) []store.ListOption {
	var opts []store.ListOption
	if prefix, ok := filters.ServerSide(filters.BuildFilters(cmd.String("filter")), "prefix"); ok {
		opts = append(opts, store.WithPrefix(prefix))
	}
	return opts
}

func listCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "list",
		Usage:     "list buckets, or the objects in a bucket",
		UsageText: "s3cli list [--bucket NAME] [options]",
		Flags: []cli.Flag{
			NewBucketFlag(false),
		},
		Action:  listCommandAction,
		Meta:    meta,
		Session: true,
		Listing: true,
	}).Build()
}
