package pipeline

import (
	"context"
	"log/slog"
	"time"

	"spacebuild/internal/logging"
	"spacebuild/internal/staleness"
	"spacebuild/internal/toolexec"
)

// Step is one (source, destination, tool) triple.
type Step struct {
	Label       string
	Source      string
	Destination string
	Invocation  toolexec.Invocation
}

// Action names what happened to a step.
type Action string

const (
	ActionSkipped Action = "skipped"
	ActionBuilt   Action = "built"
	ActionFailed  Action = "failed"
)

// Report describes a finished step for observers.
type Report struct {
	Step     Step
	Action   Action
	Status   int
	Duration time.Duration
	Err      error
}

// Observer receives a report for every step Execute visits.
type Observer interface {
	StepFinished(ctx context.Context, report Report)
}

// Runner executes steps with a tool executor.
type Runner struct {
	Executor toolexec.Executor
	Logger   *slog.Logger
	Observer Observer
}

// Execute walks steps in order. Fresh steps are skipped; stale steps run their
// tool. The first non-zero status ends the run and later steps are not
// visited.
func (r Runner) Execute(ctx context.Context, steps []Step) Result {
	logger := logging.WithContext(ctx, r.Logger)
	executor := r.Executor
	if executor == nil {
		executor = toolexec.CommandExecutor{}
	}

	result := Success()
	for _, step := range steps {
		verdict := staleness.Check(step.Source, step.Destination)
		if !verdict.Stale {
			logger.Debug("step up to date",
				logging.Args(append(logging.DecisionAttrs("staleness", "fresh", verdict.Reason),
					logging.String("source", step.Source),
					logging.String("destination", step.Destination))...)...)
			result.Skipped++
			r.notify(ctx, Report{Step: step, Action: ActionSkipped})
			continue
		}

		logger.Info("rebuilding",
			logging.String(logging.FieldEventType, "tool_start"),
			logging.String("item", step.Label),
			logging.String("reason", verdict.Reason),
			logging.String("command", step.Invocation.String()),
		)
		started := time.Now()
		status, err := executor.Run(ctx, step.Invocation)
		elapsed := time.Since(started)
		result.Invoked++

		if status != 0 {
			logger.Error("tool failed",
				logging.String(logging.FieldEventType, "tool_failure"),
				logging.String("item", step.Label),
				logging.Int("status", status),
				logging.Duration("elapsed", elapsed),
				logging.Error(err),
			)
			r.notify(ctx, Report{Step: step, Action: ActionFailed, Status: status, Duration: elapsed, Err: err})
			return result.Then(Failure(status, err))
		}

		logger.Debug("tool finished",
			logging.String(logging.FieldEventType, "tool_complete"),
			logging.String("item", step.Label),
			logging.Duration("elapsed", elapsed),
		)
		r.notify(ctx, Report{Step: step, Action: ActionBuilt, Duration: elapsed})
	}
	return result
}

func (r Runner) notify(ctx context.Context, report Report) {
	if r.Observer != nil {
		r.Observer.StepFinished(ctx, report)
	}
}
