package main

import (
	"github.com/spf13/cobra"

	"spacebuild/internal/driver"
)

func newBuildCommands(ctx *commandContext) []*cobra.Command {
	prebuild := &cobra.Command{
		Use:   "prebuild",
		Short: "Convert stale media in every media set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDriver(cmd, func(d *driver.Driver) error {
				return resultError(cmd, d.Prebuild(cmd.Context(), d.Config().AssetsWorkingDir()))
			})
		},
	}

	build := &cobra.Command{
		Use:   "build",
		Short: "Assemble stale manifest entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDriver(cmd, func(d *driver.Driver) error {
				return resultError(cmd, d.Build(cmd.Context(), d.Config().SourceWorkingDir()))
			})
		},
	}

	all := &cobra.Command{
		Use:   "all",
		Short: "Run prebuild, then build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDriver(cmd, func(d *driver.Driver) error {
				return resultError(cmd, d.All(cmd.Context(), driver.LayoutFromConfig(d.Config())))
			})
		},
	}

	return []*cobra.Command{prebuild, build, all}
}
