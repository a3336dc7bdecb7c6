// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/compute"
	"github.com/s3cli/s3cli/internal/meta"
)

// launchCommandAction submits one spot request for one instance. The spec is
// validated before any session is opened.
func launchCommandAction(ctx context.Context, cmd *cli.Command) error {
	script, err := compute.ReadUserData(cmd.String("user-data"))
	if err != nil {
		return err
	}

	spec, err := compute.NewSpotRequestSpec(
		compute.WithImageID(cmd.String("ami")),
		compute.WithInstanceType(cmd.String("instance-type")),
		compute.WithMaxPrice(cmd.String("max-price")),
		compute.WithUserData(script),
	)
	if err != nil {
		return err
	}

	sess, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}

	res, err := compute.NewProvisioner(sess.EC2, sess.Region).RequestSpotInstance(ctx, spec)
	if err != nil {
		return err
	}

	lines := []string{res.Message}
	for _, r := range res.Requests {
		lines = append(lines, fmt.Sprintf("  %s %s %s %s", r.ID, r.State, r.Type, r.Price))
	}
	return Emit(cmd, strings.Join(lines, "\n"), res, res.Raw)
}

func launchCommandBuilder(meta meta.Meta) *cli.Command {
	path := meta.Config.Source

	return (&CommandBuilder{
		Name:      "launch-instance",
		Usage:     "request one spot instance",
		UsageText: "s3cli launch-instance [--user-data FILE] [--ami ID] [--instance-type T] [--max-price P] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "ami",
				Usage:   fmt.Sprintf("machine image id (default %s)", compute.DefaultImageID),
				Sources: sourceChain("launch-instance", path, "ami"),
			},
			&cli.StringFlag{
				Name:    "instance-type",
				Usage:   fmt.Sprintf("instance type (default %s)", compute.DefaultInstanceType),
				Sources: sourceChain("launch-instance", path, "instance-type"),
			},
			&cli.StringFlag{
				Name:    "max-price",
				Usage:   fmt.Sprintf("maximum hourly price (default %s)", compute.DefaultMaxPrice),
				Sources: sourceChain("launch-instance", path, "max-price"),
			},
			&cli.StringFlag{
				Name:    "user-data",
				Usage:   "bootstrap script file, sent base64 encoded",
				Sources: sourceChain("launch-instance", path, "user-data"),
			},
		},
		Action:  launchCommandAction,
		Meta:    meta,
		Session: true,
	}).Build()
}
