package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/hostfacts/pkg/config"
	"github.com/vertti/hostfacts/pkg/execution"
	"github.com/vertti/hostfacts/pkg/facts"
	"github.com/vertti/hostfacts/pkg/logging"
	"github.com/vertti/hostfacts/pkg/output"
)

// Version is set at build time via ldflags
var Version = "dev"

// Replaced in tests.
var (
	executor     execution.Executor = execution.RealExecutor{}
	newResolvers                    = facts.DefaultResolvers
)

var (
	configFile  string
	envFile     string
	factsFormat string
	cfg         *config.Config
)

// exitError carries a process exit code back to main.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "hostfacts [query...]",
	Short:             "Gather facts about the host system",
	Long:              "Hostfacts probes the operating system, hardware and virtualization environment and prints what it finds.",
	Version:           Version,
	Args:              cobra.ArbitraryArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runFacts,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error, fatal, disabled)")
	flags.String("log-format", logging.FormatConsole, "log format (console, json)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringVar(&configFile, "config", "", "config file (default: hostfacts.yaml in . or ~/.config/hostfacts)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file with HOSTFACTS_* settings (default: .env)")

	rootCmd.Flags().StringVar(&factsFormat, "format", "", "output format (text, json, yaml)")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	opts := []config.Option{config.WithFlags(cmd.Flags())}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	var err error
	if cfg, err = config.Load(opts...); err != nil {
		return err
	}
	if cfg.Log.NoColor {
		output.DisableColor()
	}
	return logging.Init(cfg.Log, cmd.ErrOrStderr())
}

func runFacts(cmd *cobra.Command, args []string) error {
	collection := facts.Gather(cmd.Context(), newResolvers(executor)...)

	values := collection.Map()
	if len(args) > 0 {
		var err error
		if values, err = collection.Query(args...); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	format := cfg.Facts.Format
	if format == "" {
		format = output.DefaultFormat(out)
	}
	return output.Render(out, format, values)
}
