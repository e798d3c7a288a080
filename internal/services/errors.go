package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrInvocation    = errors.New("tool invocation failed")
	ErrFilesystem    = errors.New("filesystem error")
	ErrConfiguration = errors.New("configuration error")
	ErrLocked        = errors.New("build already running")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInvocation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ErrorDetails summarizes an error for log output and history records.
type ErrorDetails struct {
	Kind    string
	Message string
}

// Details classifies err against the sentinel markers.
func Details(err error) ErrorDetails {
	if err == nil {
		return ErrorDetails{}
	}
	details := ErrorDetails{Kind: "unknown", Message: strings.TrimSpace(err.Error())}
	switch {
	case errors.Is(err, ErrToolNotFound):
		details.Kind = "tool_not_found"
	case errors.Is(err, ErrInvocation):
		details.Kind = "invocation"
	case errors.Is(err, ErrFilesystem):
		details.Kind = "filesystem"
	case errors.Is(err, ErrConfiguration):
		details.Kind = "configuration"
	case errors.Is(err, ErrLocked):
		details.Kind = "locked"
	}
	return details
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "build failure"
	}
	return strings.Join(parts, ": ")
}
