package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vertti/hostfacts/pkg/output"
)

// ErrNotFound is returned when a requested executable is not on the search path.
var ErrNotFound = errors.New("executable not found")

var whichCmd = &cobra.Command{
	Use:   "which <name>...",
	Short: "Locate executables the way fact resolvers do",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWhich,
}

func init() {
	rootCmd.AddCommand(whichCmd)
}

func runWhich(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	missing := false
	for _, name := range args {
		path := executor.LookPath(name)
		if path == "" {
			output.PrintStatus(out, false, "which: "+name, "not found")
			missing = true
			continue
		}
		output.PrintStatus(out, true, "which: "+name, "path: "+path)
	}

	if missing {
		return ErrNotFound
	}
	return nil
}
