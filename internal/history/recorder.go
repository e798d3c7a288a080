package history

import (
	"context"
	"log/slog"

	"spacebuild/internal/logging"
	"spacebuild/internal/pipeline"
	"spacebuild/internal/services"
)

// Recorder writes pipeline step reports into a run. Storage failures are
// logged and never interrupt the pipeline.
type Recorder struct {
	Store  *Store
	RunID  string
	Logger *slog.Logger
}

// StepFinished implements pipeline.Observer.
func (r Recorder) StepFinished(ctx context.Context, report pipeline.Report) {
	if r.Store == nil {
		return
	}
	name, _ := services.PipelineFromContext(ctx)
	step := Step{
		RunID:       r.RunID,
		Pipeline:    name,
		Label:       report.Step.Label,
		Source:      report.Step.Source,
		Destination: report.Step.Destination,
		Action:      string(report.Action),
		Status:      report.Status,
		Duration:    report.Duration,
	}
	if report.Action != pipeline.ActionSkipped {
		step.Command = report.Step.Invocation.String()
	}
	if report.Err != nil {
		step.ErrorMessage = report.Err.Error()
	}
	if err := r.Store.RecordStep(ctx, step); err != nil {
		logging.WithContext(ctx, r.Logger).Warn("history step not recorded",
			logging.String(logging.FieldEventType, "history_write_failed"),
			logging.String("item", report.Step.Label),
			logging.Error(err),
		)
	}
}
