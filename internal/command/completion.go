// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pkgsync/pkgsync/internal/meta"
)

const bashCompletionScript = `# bash completion for pkgsync
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_pkgsync()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "sync snapshot diff jupyter-config completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color --filter --format -F --padding --sort --titles"

    case "$cmd" in
        sync)
            local opts="$common --freeze --pyproject --output -o --s3-uri --skip-transitive-check --cluster --version"
            ;;
        snapshot)
            local opts="--freeze --output -o --s3-uri --cluster --version"
            ;;
        diff)
            local opts="--color"
            ;;
        jupyter-config)
            local opts="--allow-root --ip --root-dir --write"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--format" || "$prev" == "-F" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml table" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--freeze" || "$prev" == "--pyproject" || "$prev" == "--output" || "$prev" == "-o" || "$prev" == "--write" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # diff takes listing file positionals
    if [[ "$cmd" == "diff" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _pkgsync pkgsync
`

const zshCompletionScript = `#compdef pkgsync

_pkgsync() {
  local -a cmds
  cmds=(
    'sync:compare installed packages against pyproject.toml'
    'snapshot:write a TOML snapshot of installed packages'
    'diff:compare two freeze listings or snapshots'
    'jupyter-config:emit the JupyterLab server configuration'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '--color[enable colored output]'
  '--filter[filters to apply]:filters'
  '(-F --format)'{-F,--format}'[output format]:format:(text json yaml table)'
  '--padding[inter-column padding]:padding'
  '--sort[sort attributes]:attrs'
  '--titles[show column titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'pkgsync commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    sync)
      _arguments -C \
        $common \
        '--freeze[pip freeze listing file]:file:_files' \
        '--pyproject[pyproject.toml manifest]:file:_files' \
        '(-o --output)'{-o,--output}'[snapshot destination]:file:_files' \
        '--s3-uri[s3 upload location]:uri' \
        '--skip-transitive-check[skip pip reverse-dependency query]' \
        '--cluster[cluster label]:cluster' \
        '--version[Bioconductor release label]:version'
      ;;
    snapshot)
      _arguments -C \
        '--freeze[pip freeze listing file]:file:_files' \
        '(-o --output)'{-o,--output}'[snapshot destination]:file:_files' \
        '--s3-uri[s3 upload location]:uri' \
        '--cluster[cluster label]:cluster' \
        '--version[Bioconductor release label]:version'
      ;;
    diff)
      _arguments -C \
        '--color[enable colored diff output]' \
        '1:before listing:_files' \
        '2:after listing:_files'
      ;;
    jupyter-config)
      _arguments -C \
        '--allow-root[permit running as root]' \
        '--ip[bind address]:ip' \
        '--root-dir[server root directory]:dir:_directories' \
        '--write[write to path instead of stdout]:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _pkgsync pkgsync pkgsync
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: pkgsync completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "pkgsync completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: completionCommandAction,
	}
}
