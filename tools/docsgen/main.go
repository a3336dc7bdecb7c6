// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders a markdown page per s3cli subcommand. Flags and
// usage come from the command tree itself; examples and notes come from an
// optional <docs>/templates/s3cli.yaml.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/s3cli/s3cli/internal/command"
	"github.com/s3cli/s3cli/internal/meta"
)

type Config struct {
	Subcommands []Extra `yaml:"subcommands"`
}

// Extra is the hand written part of a page.
type Extra struct {
	ID          string    `yaml:"id"`
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Subcommand struct {
	ID          string
	Short       string
	Description string
	Usage       string
	Flags       []Flag
	Examples    []Example
	Notes       []string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

const pageTemplate = `# s3cli {{ .ID }}

{{ .Short }}
{{ if .Description }}
{{ .Description }}
{{ end }}
## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `

## Flags

| Flag | Description | Default |
|------|-------------|---------|
{{ range .Flags }}| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{ end }}{{ if .Examples }}
## Examples
{{ range .Examples }}
{{ .Description }}

` + "```" + `
{{ .Command }}
` + "```" + `
{{ end }}{{ end }}{{ if .Notes }}
## Notes
{{ range .Notes }}
- {{ . }}{{ end }}
{{ end }}
_s3cli {{ .Version }}, generated {{ .Date }}_
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(2)
	}
	docs := os.Args[1]

	extras := map[string]Extra{}
	if data, err := os.ReadFile(filepath.Join(docs, "templates", "s3cli.yaml")); err == nil {
		var config Config
		if err := yaml.Unmarshal(data, &config); err != nil {
			panic(err)
		}
		for _, e := range config.Subcommands {
			extras[e.ID] = e
		}
	}

	tmpl := template.Must(template.New("page").Parse(pageTemplate))

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		panic(err)
	}

	app := command.NewApp(meta.Meta{})
	for _, cmd := range app.Commands {
		sub := describe(cmd)
		if e, ok := extras[sub.ID]; ok {
			sub.Description = e.Description
			sub.Examples = e.Examples
			sub.Notes = e.Notes
		}

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		name := filepath.Join(folder, sub.ID+".md")
		file, err := os.Create(name)
		if err != nil {
			panic(err)
		}
		fmt.Println("Generating", name)
		if err := tmpl.Execute(file, metadata); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// describe lifts the usage and flags of cmd into a Subcommand.
func describe(cmd *cli.Command) Subcommand {
	sub := Subcommand{
		ID:    cmd.Name,
		Short: cmd.Usage,
		Usage: cmd.UsageText,
	}

	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			flag.Default = df.GetValue()
		}
		sub.Flags = append(sub.Flags, flag)
	}

	sort.Slice(sub.Flags, func(i, j int) bool {
		return sub.Flags[i].ID < sub.Flags[j].ID
	})
	return sub
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
