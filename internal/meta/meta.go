// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	awsx "github.com/s3cli/s3cli/internal/aws"
	"github.com/s3cli/s3cli/internal/config"
	"github.com/s3cli/s3cli/internal/fetch"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context and the collaborators commands reach for, so
// tests can swap the AWS session and the fetch runner for fakes.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context

	// Open opens the AWS session. Nil means awsx.OpenSession.
	Open awsx.Opener
	// FetchOptions are prepended to the options of every Fetcher built.
	FetchOptions []fetch.Option

	Stdout io.Writer
	Stderr io.Writer

	StartingDir string
}

// Opener returns m.Open, defaulting to awsx.OpenSession.
func (m Meta) Opener() awsx.Opener {
	if m.Open != nil {
		return m.Open
	}
	return awsx.OpenSession
}

// Out returns the writer for command results.
func (m Meta) Out() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Err returns the writer for diagnostics.
func (m Meta) Err() io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}
