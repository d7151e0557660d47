package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/pointstore/collection"
	"github.com/spf13/cobra"
)

func newMigrateConfigCmd() *cobra.Command {
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "migrate-config",
		Short: "Rewrite a collection config in the current format",
		Long:  "Load a collection config, migrating legacy segment layouts, and write it in the current format.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := collection.LoadConfig(inPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			out, err := collection.MarshalConfig(cfg)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "config to migrate (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default stdout)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
