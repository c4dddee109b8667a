// Command dupscan finds structurally duplicate methods in a Go codebase.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dupscan/dupscan/cmd/dupscan/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dupscan",
		Short: "dupscan finds near-duplicate methods via tree edit distance",
		Long: `dupscan parses a codebase, builds a normalized syntax tree for every
method, and groups methods whose trees are structurally close enough to be
likely duplicates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
