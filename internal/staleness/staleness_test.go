package staleness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeWithTime(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestIsStale(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		srcTime  time.Time
		dstTime  *time.Time
		expected bool
	}{
		{name: "destination missing", srcTime: base, dstTime: nil, expected: true},
		{name: "destination older", srcTime: base, dstTime: ptr(base.Add(-time.Minute)), expected: true},
		{name: "destination same time", srcTime: base, dstTime: ptr(base), expected: false},
		{name: "destination newer", srcTime: base, dstTime: ptr(base.Add(time.Hour)), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "a.wav")
			dst := filepath.Join(dir, "a")
			writeWithTime(t, src, tt.srcTime)
			if tt.dstTime != nil {
				writeWithTime(t, dst, *tt.dstTime)
			}
			if got := IsStale(src, dst); got != tt.expected {
				t.Fatalf("IsStale = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsStaleMissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out")
	writeWithTime(t, dst, time.Now())
	if !IsStale(filepath.Join(dir, "missing.wav"), dst) {
		t.Fatal("expected missing source to be treated as stale")
	}
}

func TestReason(t *testing.T) {
	now := time.Now()
	src := Artifact{Path: "s", ModTime: now, Exists: true}
	cases := map[string]Artifact{
		"destination missing":           {Path: "d"},
		"source newer than destination": {Path: "d", ModTime: now.Add(-time.Second), Exists: true},
		"destination up to date":        {Path: "d", ModTime: now, Exists: true},
	}
	for want, dst := range cases {
		if got := Reason(src, dst); got != want {
			t.Fatalf("Reason = %q, want %q", got, want)
		}
	}
	if got := Reason(Artifact{}, Artifact{}); got != "source missing" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestCheckCarriesReason(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := filepath.Join(dir, "b.gif")
	dst := filepath.Join(dir, "b")
	writeWithTime(t, src, base)

	verdict := Check(src, dst)
	if !verdict.Stale || verdict.Reason != "destination missing" || verdict.Destination.Exists {
		t.Fatalf("unexpected verdict %+v", verdict)
	}

	writeWithTime(t, dst, base.Add(-time.Second))
	if verdict := Check(src, dst); !verdict.Stale || verdict.Reason != "source newer than destination" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}

	writeWithTime(t, dst, base)
	verdict = Check(src, dst)
	if verdict.Stale || verdict.Reason != "destination up to date" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
	if verdict.Source.Path != src || verdict.Destination.Path != dst {
		t.Fatalf("verdict paths %q %q", verdict.Source.Path, verdict.Destination.Path)
	}
	if IsStale(src, dst) != verdict.Stale {
		t.Fatal("IsStale disagrees with Check")
	}
}

func ptr(v time.Time) *time.Time { return &v }
