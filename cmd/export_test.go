package cmd

import "github.com/spf13/cobra"

// RootCommand exposes the root command for tests.
func RootCommand() *cobra.Command {
	return rootCmd
}
