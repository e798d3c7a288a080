package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spacebuild/internal/config"
	"spacebuild/internal/logging"
	"spacebuild/internal/services"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config", logging.String("item", "a.wav"))
	logger.Debug("below configured level")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "spacebuild.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one JSON line, got %q", content)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &payload); err != nil {
		t.Fatalf("log file should hold JSON lines: %v", err)
	}
	if payload["msg"] != "hello from config" || payload["item"] != "a.wav" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	dir := t.TempDir()
	debugLogger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{filepath.Join(dir, "debug.log")}})
	if err != nil {
		t.Fatal(err)
	}
	errorLogger, err := logging.New(logging.Options{Format: "console", Level: "error", OutputPaths: []string{filepath.Join(dir, "error.log")}})
	if err != nil {
		t.Fatal(err)
	}

	logger := slog.New(logging.TeeHandler(debugLogger.Handler(), nil, errorLogger.Handler())).With(logging.String("run_id", "r1"))
	logger.Debug("detail")
	logger.Error("broken")

	debugOut, _ := os.ReadFile(filepath.Join(dir, "debug.log"))
	errorOut, _ := os.ReadFile(filepath.Join(dir, "error.log"))
	if !strings.Contains(string(debugOut), "detail") || !strings.Contains(string(debugOut), "broken") {
		t.Fatalf("debug sink should see both lines, got %q", debugOut)
	}
	if strings.Contains(string(errorOut), "detail") || !strings.Contains(string(errorOut), "run_id=r1") {
		t.Fatalf("error sink should see only the error with attrs, got %q", errorOut)
	}
	if _, ok := logging.TeeHandler().(logging.NoopHandler); !ok {
		t.Fatal("empty tee should discard")
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "convert")
	component.Info("tool invoked", logging.String("source", "a b.wav"), logging.Int("status", 0))
	component.Debug("hidden at info level")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO convert: tool invoked") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, `source="a b.wav"`) {
		t.Fatalf("expected quoted value with spaces, got %q", line)
	}
	if strings.Contains(line, "hidden at info level") {
		t.Fatalf("debug line should be filtered, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", line)
	}
}

func TestJSONLoggerIncludesContextFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithPipeline(ctx, "build")
	logging.WithContext(ctx, logger).Info("entry fresh")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, content)
	}
	if payload[logging.FieldRunID] != "run-42" {
		t.Fatalf("expected run id field, got %v", payload)
	}
	if payload[logging.FieldPipeline] != "build" {
		t.Fatalf("expected pipeline field, got %v", payload)
	}
	if payload["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.WithContext(context.TODO(), nil).Info("no panic")
}
