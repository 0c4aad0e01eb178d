package execution

import (
	"context"
	"slices"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// Shell runs command through the platform shell ("sh -c" or "cmd.exe /c").
func Shell(ctx context.Context, command string, opts Options, timeout time.Duration) (Result, error) {
	args := append(slices.Clone(commandArgs), command)
	return Execute(ctx, Command{
		File:    commandShell,
		Args:    args,
		Options: opts,
		Timeout: timeout,
	}, nil)
}

// ExpandCommand resolves the program named by the first word of a shell
// command line and returns the command with that word replaced by the
// executable's absolute path. It returns "" when the command is empty,
// cannot be parsed, or the program is not found.
func ExpandCommand(command string) string {
	return expandCommand(command, SearchPaths())
}

func expandCommand(command string, dirs []string) string {
	f, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil || len(f.Stmts) == 0 {
		return ""
	}
	call, ok := f.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Args) == 0 {
		return ""
	}

	first := call.Args[0]
	start, end := first.Pos().Offset(), first.End().Offset()
	// Unquote the word without expanding variables.
	words, err := shell.Fields(command[start:end], func(string) string { return "" })
	if err != nil || len(words) != 1 {
		return ""
	}

	executable := Which(words[0], dirs)
	if executable == "" {
		return ""
	}
	return command[:start] + quotePath(executable) + command[end:]
}

// quotePath double-quotes a path containing whitespace. Both sh and cmd.exe
// accept that form.
func quotePath(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `"` + path + `"`
	}
	return path
}
