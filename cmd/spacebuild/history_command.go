package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"spacebuild/internal/history"
	"spacebuild/internal/pipeline"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent build runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "Run history is disabled (history.enabled = false)")
				return nil
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the steps recorded for one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("run history is disabled (history.enabled = false)")
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			steps, err := store.Steps(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "Command:  %s\n", run.Command)
			fmt.Fprintf(out, "Project:  %s\n", run.ProjectRoot)
			fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Duration: %s\n", formatRunDuration(*run))
			fmt.Fprintf(out, "Result:   %s\n", runResult(*run))
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
			}
			if len(steps) == 0 {
				fmt.Fprintln(out, "No steps recorded")
				return nil
			}
			fmt.Fprintln(out, renderStepTable(steps))
			return nil
		},
	}
}

func renderStepTable(steps []history.Step) string {
	headers := []string{"Pipeline", "Item", "Action", "Status", "Duration", "Command"}
	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		duration := "-"
		if step.Action != string(pipeline.ActionSkipped) {
			duration = step.Duration.String()
		}
		rows = append(rows, []string{
			step.Pipeline,
			step.Label,
			step.Action,
			strconv.Itoa(step.Status),
			duration,
			step.Command,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func renderHistoryTable(runs []history.Run) string {
	headers := []string{"Run", "Command", "Started", "Duration", "Rebuilt", "Up to date", "Result"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.Command,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatRunDuration(run),
			strconv.Itoa(run.Invoked),
			strconv.Itoa(run.Skipped),
			runResult(run),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRunDuration(run history.Run) string {
	if !run.Finished {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

func runResult(run history.Run) string {
	switch {
	case !run.Finished:
		return "incomplete"
	case run.Status == 0:
		return "ok"
	case run.ErrorKind != "":
		return fmt.Sprintf("status %d (%s)", run.Status, run.ErrorKind)
	default:
		return fmt.Sprintf("status %d", run.Status)
	}
}
