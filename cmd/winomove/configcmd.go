package main

import (
	"github.com/1broseidon/winomove/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default().WithLogLevel(*logLevel)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return cfg.Print(cmd.OutOrStdout())
		},
	}
}
