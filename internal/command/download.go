// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/fetch"
	"github.com/s3cli/s3cli/internal/meta"
)

// downloadCommandAction fetches the --repo artifact with the external fetch
// program. No AWS session is opened.
func downloadCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireNonEmpty(cmd, "repo"); err != nil {
		return err
	}

	opts := append([]fetch.Option{}, GetMeta(cmd).FetchOptions...)
	opts = append(opts,
		fetch.WithProgram(cmd.String("program")),
		fetch.WithBase(cmd.String("base")),
		fetch.WithOutput(cmd.String("dest")),
	)

	res, err := fetch.New(opts...).Fetch(ctx, cmd.String("repo"))
	if err != nil {
		return err
	}

	text := res.Message
	if s := strings.TrimSpace(res.Stdout); s != "" {
		text += "\nSTDOUT: " + s
	}
	if s := strings.TrimSpace(res.Stderr); s != "" {
		text += "\nSTDERR: " + s
	}
	return Emit(cmd, text, res, nil)
}

func downloadCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.Config.Source

	return (&CommandBuilder{
		Name:      "download",
		Usage:     "download a prebuilt binary artifact",
		UsageText: "s3cli download --repo NAME [--program P] [--base URL] [--dest FILE] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    "artifact name",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "base",
				Usage:   fmt.Sprintf("artifact base URL (default %s)", fetch.DefaultBase),
				Sources: sourceChain("download", path, "base"),
			},
			&cli.StringFlag{
				Name:    "dest",
				Usage:   fmt.Sprintf("local file written (default %s)", fetch.DefaultOutput),
				Sources: sourceChain("download", path, "dest"),
			},
			&cli.StringFlag{
				Name:    "program",
				Usage:   fmt.Sprintf("fetch program, wget or curl (default %s)", fetch.DefaultProgram),
				Sources: sourceChain("download", path, "program"),
			},
		},
		Action:  downloadCommandAction,
		Meta:    meta,
		Timeout: true,
	}).Build()
}
