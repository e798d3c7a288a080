package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spacebuild/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrFilesystem, "prebuild", "mkdir", "create output", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"prebuild", "mkdir", "create output"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrInvocation) {
		t.Fatalf("expected invocation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "build failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestDetailsClassifiesMarkers(t *testing.T) {
	cases := map[error]string{
		services.Wrap(services.ErrToolNotFound, "locate", "", "packsound", nil): "tool_not_found",
		services.Wrap(services.ErrInvocation, "convert", "", "exit 2", nil):     "invocation",
		services.Wrap(services.ErrLocked, "driver", "", "", nil):                "locked",
		errors.New("plain"): "unknown",
	}
	for err, want := range cases {
		if got := services.Details(err).Kind; got != want {
			t.Fatalf("Details(%v).Kind = %q, want %q", err, got, want)
		}
	}
	if got := services.Details(nil); got.Kind != "" || got.Message != "" {
		t.Fatalf("expected empty details for nil, got %#v", got)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithPipeline(ctx, "prebuild")
	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q (ok=%v)", id, ok)
	}
	if name, ok := services.PipelineFromContext(ctx); !ok || name != "prebuild" {
		t.Fatalf("unexpected pipeline %q (ok=%v)", name, ok)
	}
	if services.WithRunID(ctx, "") != ctx {
		t.Fatal("expected empty run id to leave context untouched")
	}
}
