// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/config"
	"github.com/s3cli/s3cli/internal/meta"
)

// InitApp builds the command tree for args with the real AWS session and
// fetch program. Results go to stdout and diagnostics to stderr.
func InitApp(ctx context.Context, args []string, stdout, stderr io.Writer) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}

	// The arg[1] immediately following the binary (arg[0]) is the s3cli
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns
	_ = config.Path()

	return NewApp(meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		Stdout:      stdout,
		Stderr:      stderr,
		StartingDir: sd,
	}), nil
}

// NewApp builds the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "s3cli",
		Usage: "AWS S3 and EC2 from the command line",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "s3cli version info",
				HideDefault: true,
			},
		},
		Metadata: map[string]any{
			"meta": m,
		},
		Writer:    m.Out(),
		ErrWriter: m.Err(),

		// Termination belongs to the caller of Run.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action:         rootAction,
	}

	app.Commands = append(app.Commands,
		listCommandBuilder(m),
		createCommandBuilder(m),
		uploadCommandBuilder(m),
		deleteCommandBuilder(m),
		getCommandBuilder(m),
		launchCommandBuilder(m),
		downloadCommandBuilder(m),
		completionCommandBuilder(m),
	)

	return app
}

// rootAction runs when no subcommand matched. A leftover argument is an
// unknown command; nothing at all shows help.
func rootAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return apperr.New(apperr.Argument, cmd.Args().First(), "unknown command %q", cmd.Args().First())
	}
	return cli.ShowAppHelp(cmd)
}

// ExitCode maps an error returned by the command tree to the process exit
// code. Errors that carry no kind come from flag parsing and are argument
// errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Kind.ExitCode()
	}
	return apperr.Argument.ExitCode()
}

// Report writes err to w as "s3cli: <kind>: <message>".
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	kind := apperr.Argument
	var e *apperr.Error
	if errors.As(err, &e) {
		kind = e.Kind
	}
	fmt.Fprintf(w, "s3cli: %s: %s\n", kind, err)
}
