package pipeline

import "fmt"

// StatusSetupFailure is the status for failures that happen before or around
// tool invocation: missing tools, unreadable directories, a held run lock.
const StatusSetupFailure = 1

// Result is the outcome of a pipeline run. Status zero means success;
// otherwise it is the status of the first failing tool or StatusSetupFailure.
type Result struct {
	Status  int
	Err     error
	Invoked int
	Skipped int
}

// Success returns a successful result.
func Success() Result {
	return Result{}
}

// Failure returns a failed result. A zero status is promoted to
// StatusSetupFailure so a failure can never read as success.
func Failure(status int, err error) Result {
	if status == 0 {
		status = StatusSetupFailure
	}
	if err == nil {
		err = fmt.Errorf("pipeline failed with status %d", status)
	}
	return Result{Status: status, Err: err}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == 0
}

// Then accumulates the work counters of next into r and returns next's
// outcome. Use it to chain sequential pipeline runs.
func (r Result) Then(next Result) Result {
	next.Invoked += r.Invoked
	next.Skipped += r.Skipped
	return next
}

func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("success (%d rebuilt, %d up to date)", r.Invoked, r.Skipped)
	}
	return fmt.Sprintf("failed with status %d: %v", r.Status, r.Err)
}
