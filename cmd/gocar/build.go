package main

import (
	"github.com/gocar-build/gocar/engine"
	"github.com/gocar-build/gocar/internal/base"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the project's libraries and binaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := engine.Build(".", profileName())
		if err != nil {
			return err
		}
		for _, lib := range result.Libraries {
			base.LogInfof(LogCLI, "built %s", lib.String())
		}
		for _, bin := range result.Binaries {
			base.LogInfof(LogCLI, "built %s", bin.String())
		}
		return nil
	},
}
