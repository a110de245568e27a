package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information injected by goreleaser
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultResultsDir is where runs and review look for stored runs.
const defaultResultsDir = ".namecheck/results"

var rootCmd = &cobra.Command{
	Use:           "namecheck",
	Short:         "Check Python names for short and underscored-number identifiers",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "namecheck %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built at: %s\n", date)
	},
}

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// exitCode maps a command error to the process exit code: 0 on success,
// 1 when findings were reported and 2 for usage, config or I/O errors.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 2
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	err := rootCmd.Execute()
	var ee *exitError
	if err != nil && !(errors.As(err, &ee) && ee.err == nil) {
		fmt.Fprintln(os.Stderr, "namecheck:", err)
	}
	os.Exit(exitCode(err))
}
