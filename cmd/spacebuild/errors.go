package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spacebuild/internal/driver"
	"spacebuild/internal/pipeline"
)

// exitError carries a pipeline status out of a command so main can exit with
// it. The failure has already been logged by the driver.
type exitError struct {
	status int
	err    error
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.status, e.err)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func resultError(cmd *cobra.Command, result pipeline.Result) error {
	if result.OK() {
		return nil
	}
	if driver.IsLocked(result.Err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Another spacebuild run is in progress; try again once it finishes")
	}
	return &exitError{status: result.Status, err: result.Err}
}
