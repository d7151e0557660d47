package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pointlookup",
		Short:         "Point lookup CLI",
		Long:          "Resolve point ids against a collection loaded from a config and a points file.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newMigrateConfigCmd())
	return rootCmd
}
