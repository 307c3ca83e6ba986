package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qstate-demo",
		Short: "Demo server for the qstate query-string state engine",
		Long: `qstate-demo serves a self-contained page whose query-string state
is synchronized with the server through the qstate bridge.

The page's typed parameters live in the URL; edits flow through the
engine's commit path, back/forward navigation flows back through the
bridge, and every change is observable on both sides.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qstate-demo %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
