// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/s3cli/s3cli/internal/apperr"
	"github.com/s3cli/s3cli/internal/log"
)

// Defaults for the artifact download.
const (
	DefaultProgram = "wget"
	DefaultBase    = "https://github.com/athletedecoded/cookbook-binaries/raw/main/binaries/cpu/quantized"
	DefaultOutput  = "quantized-cpu"
)

// Runner executes program with args and returns its captured output.
type Runner func(ctx context.Context, program string, args ...string) (stdout, stderr []byte, err error)

// Fetcher downloads a named artifact by shelling out to an HTTP fetch program.
type Fetcher struct {
	Program string
	Base    string
	Output  string

	run         Runner
	interactive bool
	spinnerOut  io.Writer
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithProgram sets the fetch program. Empty keeps the default.
func WithProgram(p string) Option {
	return func(f *Fetcher) {
		if p != "" {
			f.Program = p
		}
	}
}

// WithBase sets the base URL. Empty keeps the default.
func WithBase(b string) Option {
	return func(f *Fetcher) {
		if b != "" {
			f.Base = b
		}
	}
}

// WithOutput sets the local output file. Empty keeps the default.
func WithOutput(o string) Option {
	return func(f *Fetcher) {
		if o != "" {
			f.Output = o
		}
	}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(f *Fetcher) { f.run = r }
}

// WithSpinner forces the progress spinner on or off.
func WithSpinner(on bool) Option {
	return func(f *Fetcher) { f.interactive = on }
}

// New returns a Fetcher with defaults applied. The spinner is shown only when
// stderr is a terminal.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		Program:     DefaultProgram,
		Base:        DefaultBase,
		Output:      DefaultOutput,
		run:         execRunner,
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
		spinnerOut:  os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL renders the download URL for repo.
func URL(base, repo string) string {
	return base + "?download=" + url.QueryEscape(repo)
}

// Args returns the program arguments that write u to output. curl gets its
// own flag set; everything else is assumed to speak wget's.
func Args(program, output, u string) []string {
	if strings.TrimSuffix(filepath.Base(program), ".exe") == "curl" {
		return []string{"-fsSL", "-o", output, u}
	}
	return []string{"-O", output, u}
}

// Result is the outcome of a successful fetch.
type Result struct {
	Message string `json:"message" yaml:"message"`
	URL     string `json:"url" yaml:"url"`
	Output  string `json:"output" yaml:"output"`
	Program string `json:"program" yaml:"program"`
	Stdout  string `json:"stdout" yaml:"stdout"`
	Stderr  string `json:"stderr" yaml:"stderr"`
}

// Fetch downloads repo to f.Output. A missing program or a non-zero exit is
// apperr.Transport. A run that leaves no output file is apperr.IO.
func (f *Fetcher) Fetch(ctx context.Context, repo string) (*Result, error) {
	if strings.TrimSpace(repo) == "" {
		return nil, apperr.MissingArgument("repo")
	}

	u := URL(f.Base, repo)
	args := Args(f.Program, f.Output, u)
	log.Debugf("fetching: program=%s, args=%v", f.Program, args)

	var stdout, stderr []byte
	runErr := func() error {
		var err error
		stdout, stderr, err = f.run(ctx, f.Program, args...)
		return err
	}

	var err error
	if f.interactive {
		err = runWithSpinner(ctx, f.spinnerOut, fmt.Sprintf("Downloading %s", repo), runErr)
	} else {
		err = runErr()
	}
	if err != nil {
		return nil, classify(f.Program, stderr, err)
	}

	info, err := os.Stat(f.Output)
	if err != nil {
		return nil, apperr.Wrap(apperr.IO, f.Output, err, "%s produced no output file %s", f.Program, f.Output)
	}

	return &Result{
		Message: fmt.Sprintf("Downloaded %s to %s (%d bytes).", repo, f.Output, info.Size()),
		URL:     u,
		Output:  f.Output,
		Program: f.Program,
		Stdout:  string(stdout),
		Stderr:  string(stderr),
	}, nil
}

func classify(program string, stderr []byte, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.Transport, program, err, "download interrupted")
	}
	if errors.Is(err, exec.ErrNotFound) {
		return apperr.Wrap(apperr.Transport, program, err, "fetch program %s not found", program)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := fmt.Sprintf("%s exited with status %d", program, exitErr.ExitCode())
		if s := strings.TrimSpace(string(stderr)); s != "" {
			msg += ": " + lastLine(s)
		}
		return apperr.Wrap(apperr.Transport, program, err, "%s", msg)
	}
	return apperr.Wrap(apperr.Transport, program, err, "%s failed", program)
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func execRunner(ctx context.Context, program string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout.Bytes(), stderr.Bytes(), err
}
