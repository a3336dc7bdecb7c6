// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/log"
	"github.com/s3cli/s3cli/internal/output"
)

// ListActionRunner[T] encapsulates the listing pattern shared by bucket and
// object listings: schema short-circuit, attrs, fetch and emission. Only the
// fetch is specific to a listing.
type ListActionRunner[T any] struct {
	SchemaType   reflect.Type
	DefaultAttrs []string
	// Header renders the text header from the number of rows fetched.
	Header  func(n int) string
	FetchFn func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the listing with the provided context and command.
func (lar *ListActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	if DumpSchemaIfRequested(cmd, lar.SchemaType) {
		return nil
	}

	al, err := BuildAttrs(cmd, lar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al)

	results, err := lar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	raw, err := output.Rows(results)
	if err != nil {
		return err
	}

	opts := output.OptionsFromCommand(cmd)
	if lar.Header != nil {
		opts.Header = lar.Header(len(results))
	}
	return output.SliceDiceSpit(raw, al, opts, "", GetMeta(cmd).Out())
}

// NewListActionRunner creates a ListActionRunner with the provided
// configuration.
func NewListActionRunner[T any](
	schemaType reflect.Type,
	defaultAttrs []string,
	header func(int) string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *ListActionRunner[T] {
	return &ListActionRunner[T]{
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		Header:       header,
		FetchFn:      fetchFn,
	}
}
