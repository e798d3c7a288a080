package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spacebuild/internal/driver"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability and what a build would rebuild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDriver(cmd, func(d *driver.Driver) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				layout := driver.LayoutFromConfig(d.Config())

				var lines []string
				if ctx.configPath != "" {
					lines = append(lines, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
				}

				tools := preflight.CheckTools(d.Requirements(layout))
				lines = append(lines, renderSectionHeader("Tools", colorize)...)
				for _, result := range tools {
					lines = append(lines, renderCheck(result, colorize))
				}

				dirs := preflight.RunAll(d.Config())
				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Directories", colorize)...)
				for _, result := range dirs {
					lines = append(lines, renderCheck(result, colorize))
				}
				failed := preflight.Failed(append(tools, dirs...))

				plan := d.Plan(layout)
				for _, set := range plan.Sets {
					lines = append(lines, "")
					lines = append(lines, renderSectionHeader(mediaSetTitle(set.Name), colorize)...)
					switch {
					case set.Err != nil:
						lines = append(lines, renderStatusLine(set.Name, statusError, set.Err.Error(), colorize))
					case len(set.Items) == 0:
						lines = append(lines, renderStatusLine(set.Name, statusInfo, "no convertible media", colorize))
					default:
						lines = append(lines, renderItemTable(set.Items))
					}
				}

				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Assembler manifest", colorize)...)
				lines = append(lines, renderEntryTable(plan.Entries))

				lines = append(lines, "")
				summaryKind := statusOK
				summary := "everything up to date"
				if stale := plan.Stale(); stale > 0 {
					summaryKind = statusWarn
					summary = fmt.Sprintf("%d item(s) would be rebuilt", stale)
				}
				lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
				if len(failed) > 0 {
					lines = append(lines, renderStatusLine("Preflight", statusError,
						fmt.Sprintf("%d check(s) failed; a run would not succeed", len(failed)), colorize))
				}

				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				if len(failed) > 0 {
					return &exitError{
						status: pipeline.StatusSetupFailure,
						err:    fmt.Errorf("preflight failed: %s", failed[0].Name),
					}
				}
				return nil
			})
		},
	}
}

func renderCheck(result preflight.Result, colorize bool) string {
	kind := statusOK
	if !result.Passed {
		kind = statusError
	}
	return renderStatusLine(result.Name, kind, result.Detail, colorize)
}
