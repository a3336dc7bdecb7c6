// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/s3cli/s3cli/internal/command"
	"github.com/s3cli/s3cli/internal/config"
	"github.com/s3cli/s3cli/internal/log"
	"github.com/s3cli/s3cli/internal/version"
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args, stdout, stderr)
	if err != nil {
		command.Report(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		command.Report(stderr, err)
		log.WithError(err).Debug("app run failed")
		return command.ExitCode(err)
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, os.Args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, stdout) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(ctx, args, stdout, stderr)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. "s3cli list @mine" splices the entries of
// config key list.mine.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	if len(args) <= idx {
		return args
	}

	set := ""
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	// Remove the @set argument.
	out := append([]string{}, args[:removeIdx]...)
	rest := args[removeIdx+1:]

	// Expand the set arguments at the removeIdx position.
	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Debugf("no set %s.%s: err=%v", args[1], set, err)
	}
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	return append(out, rest...)
}
