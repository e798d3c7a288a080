package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"spacebuild/internal/driver"
	"spacebuild/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever media or sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			return ctx.withDriver(cmd, func(d *driver.Driver) error {
				cfg := d.Config()
				layout := driver.LayoutFromConfig(cfg)

				dirs := make([]string, 0, len(cfg.Prebuild.MediaSets)+1)
				for _, set := range cfg.Prebuild.MediaSets {
					dirs = append(dirs, filepath.Join(layout.AssetsDir, set))
				}
				dirs = append(dirs, layout.SourceDir)

				w, err := watch.New(func(runCtx context.Context) {
					// Failures are logged by the driver; watching continues.
					if result := d.All(runCtx, layout); driver.IsLocked(result.Err) {
						logger.Warn("skipped rebuild while another run holds the lock")
					}
				}, watch.Options{
					Dirs:       dirs,
					Debounce:   debounce,
					Ignore:     cfg.Tools.CleanupFiles,
					InitialRun: true,
					Logger:     logger,
				})
				if err != nil {
					return err
				}
				return w.Run(cmd.Context())
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a change triggers a rebuild")
	return cmd
}
