package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vertti/hostfacts/pkg/execution"
)

var (
	execRedirect   bool
	execNoMergeEnv bool
	execEnv        []string
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- <command> [args...]",
	Short: "Run a command with a controlled environment and stream its output",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

func init() {
	execCmd.Flags().SetInterspersed(false)
	execCmd.Flags().Duration("timeout", 0, "kill the command after this duration (0 means no limit)")
	execCmd.Flags().BoolVar(&execRedirect, "redirect-stderr", false, "send the command's stderr to stdout")
	execCmd.Flags().BoolVar(&execNoMergeEnv, "no-merge-env", false, "start from an empty environment instead of the current one")
	execCmd.Flags().StringArrayVar(&execEnv, "env", nil, "set an environment variable (KEY=VALUE, repeatable)")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	env, err := parseEnv(execEnv)
	if err != nil {
		return err
	}

	opts := execution.ErrorOnNonzeroExit | execution.ErrorOnSignal
	if !execNoMergeEnv {
		opts = opts.With(execution.MergeEnvironment)
	}
	if execRedirect {
		opts = opts.With(execution.RedirectStderr)
	}

	out := cmd.OutOrStdout()
	_, err = executor.Execute(cmd.Context(), execution.Command{
		File:    args[0],
		Args:    args[1:],
		Env:     env,
		Options: opts,
		Timeout: cfg.Exec.Timeout,
	}, func(chunk string) bool {
		_, werr := io.WriteString(out, chunk)
		return werr == nil
	})
	return exitCode(err)
}

// exitCode maps command failures onto the exit code hostfacts exits with,
// following the shell convention of 128+signal for killed children.
func exitCode(err error) error {
	var exitErr *execution.ChildExitError
	if errors.As(err, &exitErr) {
		return &exitError{code: exitErr.Status}
	}
	var signalErr *execution.ChildSignalError
	if errors.As(err, &signalErr) {
		return &exitError{code: 128 + signalErr.Signal}
	}
	return err
}

// parseEnv parses KEY=VALUE pairs.
func parseEnv(pairs []string) (map[string]string, error) {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --env %q: expected KEY=VALUE", pair)
		}
		env[name] = value
	}
	return env, nil
}
