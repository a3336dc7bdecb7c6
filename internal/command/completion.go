// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/s3cli/s3cli/internal/meta"
)

const bashCompletionScript = `# bash completion for s3cli
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_s3cli()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "list create upload delete get launch-instance download completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local session="--endpoint --lookup --profile --region --timeout --output -o"

    case "$cmd" in
        list)
            local opts="$session --bucket -b --attrs -a --color -c --filter --padding --schema --sort -s --titles -t"
            ;;
        create)
            local opts="$session --bucket -b"
            ;;
        upload)
            local opts="$session --bucket -b --filepath -f --no-create"
            ;;
        delete)
            local opts="$session --bucket -b --key -k"
            ;;
        get)
            local opts="$session --bucket -b --key -k --dir -d"
            ;;
        launch-instance)
            local opts="$session --ami --instance-type --max-price --user-data"
            ;;
        download)
            local opts="--repo -r --base --dest --program --timeout --output -o"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
            return 0
            ;;
        --lookup)
            COMPREPLY=( $(compgen -W "head scan" -- "$cur") )
            return 0
            ;;
        --filepath|-f|--user-data|--dest)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
        --dir|-d)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _s3cli s3cli
`

const zshCompletionScript = `#compdef s3cli

_s3cli() {
  local -a cmds
  cmds=(
    'list:list buckets, or the objects in a bucket'
    'create:create a bucket'
    'upload:upload a file to a bucket'
    'delete:delete an object, or an empty bucket'
    'get:download an object to a local file'
    'launch-instance:request one spot instance'
    'download:download a prebuilt binary artifact'
    'completion:generate shell completion script'
  )

  local -a session
  session=(
  '--endpoint[custom S3 endpoint URL]:url'
  '--lookup[existence check]:mode:(head scan)'
  '--profile[shared config profile]:profile'
  '--region[AWS region]:region'
  '--timeout[command deadline]:duration'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 's3cli commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    list)
      _arguments -C \
        $session \
        '(-b --bucket)'{-b,--bucket}'[bucket]:bucket' \
        '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '--filter[filters to apply]:filters' \
        '--padding[column padding]:padding' \
        '--schema[dump schema]' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
        '(-t --titles)'{-t,--titles}'[show titles]'
      ;;
    create)
      _arguments -C $session '(-b --bucket)'{-b,--bucket}'[bucket]:bucket'
      ;;
    upload)
      _arguments -C \
        $session \
        '(-b --bucket)'{-b,--bucket}'[bucket]:bucket' \
        '(-f --filepath)'{-f,--filepath}'[file to upload]:file:_files' \
        '--no-create[do not create a missing bucket]'
      ;;
    delete)
      _arguments -C \
        $session \
        '(-b --bucket)'{-b,--bucket}'[bucket]:bucket' \
        '(-k --key)'{-k,--key}'[object key]:key'
      ;;
    get)
      _arguments -C \
        $session \
        '(-b --bucket)'{-b,--bucket}'[bucket]:bucket' \
        '(-k --key)'{-k,--key}'[object key]:key' \
        '(-d --dir)'{-d,--dir}'[destination directory]:dir:_directories'
      ;;
    launch-instance)
      _arguments -C \
        $session \
        '--ami[machine image id]:ami' \
        '--instance-type[instance type]:type' \
        '--max-price[maximum hourly price]:price' \
        '--user-data[bootstrap script]:file:_files'
      ;;
    download)
      _arguments -C \
        '(-r --repo)'{-r,--repo}'[artifact name]:repo' \
        '--base[artifact base URL]:url' \
        '--dest[local file]:file:_files' \
        '--program[fetch program]:program:(wget curl)' \
        '--timeout[command deadline]:duration' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _s3cli s3cli
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(m.Out(), bashCompletionScript)
	case "zsh":
		fmt.Fprint(m.Out(), zshCompletionScript)
	default:
		fmt.Fprintln(m.Err(), "usage: s3cli completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "s3cli completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
