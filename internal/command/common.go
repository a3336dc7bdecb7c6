// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/attrs"
	awsx "github.com/s3cli/s3cli/internal/aws"
	"github.com/s3cli/s3cli/internal/log"
	"github.com/s3cli/s3cli/internal/meta"
	"github.com/s3cli/s3cli/internal/output"
	"github.com/s3cli/s3cli/internal/store"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	return al, nil
}

// DumpSchemaIfRequested writes the row attributes of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, GetMeta(cmd).Out())
		return true
	}
	return false
}

// Emit renders a single result with the command's --output format.
func Emit(cmd *cli.Command, text string, doc any, raw any) error {
	return output.Emit(GetMeta(cmd).Out(), output.OptionsFromCommand(cmd), text, doc, raw)
}

// GetMeta returns the meta.Meta stored in the command's Metadata, falling back
// to the root command. If missing or of an unexpected type, it returns the
// zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	for _, c := range []*cli.Command{cmd, cmd.Root()} {
		if c == nil || c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

// OpenSession opens the AWS session described by the session flags.
func OpenSession(ctx context.Context, cmd *cli.Command) (*awsx.Session, error) {
	settings := awsx.Settings{
		Region:   cmd.String("region"),
		Profile:  cmd.String("profile"),
		Endpoint: cmd.String("endpoint"),
	}

	sess, err := GetMeta(cmd).Opener()(ctx, settings)
	if err != nil {
		return nil, err
	}
	log.Debugf("session: region=%s, source=%s", sess.Region, sess.RegionSource)
	return sess, nil
}

// NewStore opens a session and binds a Store to it using --lookup.
func NewStore(ctx context.Context, cmd *cli.Command, opts ...store.Option) (*store.Store, error) {
	mode, err := store.ParseLookupMode(cmd.String("lookup"))
	if err != nil {
		return nil, err
	}

	sess, err := OpenSession(ctx, cmd)
	if err != nil {
		return nil, err
	}

	opts = append([]store.Option{store.WithLookup(mode)}, opts...)
	return store.New(sess.S3, sess.Region, opts...), nil
}

// NoArgs wraps action so stray positional arguments are rejected instead of
// ignored.
func NoArgs(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() > 0 {
			return apperr.New(apperr.Argument, cmd.Args().First(), "unexpected argument %q", cmd.Args().First())
		}
		return action(ctx, cmd)
	}
}

// WithTimeout wraps action so it runs under the --timeout deadline, if any.
func WithTimeout(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if d := cmd.Duration("timeout"); d > 0 {
			log.Debugf("deadline: %s", d)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return action(ctx, cmd)
	}
}
