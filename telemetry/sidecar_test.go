package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMetricsSidecarWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.csv")

	m, err := NewMetricsSidecar(path)
	if err != nil {
		t.Fatalf("NewMetricsSidecar: %v", err)
	}
	if err := m.WriteLevel(LevelSummary{QMin: 0.5, Iterations: 2, States: 3, Lumped: 1}); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}
	if err := m.WriteLevel(LevelSummary{QMin: 0.6, Iterations: 1, States: 3, Lumped: 0}); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows):\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "qmin") {
		t.Errorf("header line = %q, want it to mention qmin", lines[0])
	}
}

func TestNilSidecarIsANoOp(t *testing.T) {
	m, err := NewMetricsSidecar("")
	if err != nil {
		t.Fatalf("NewMetricsSidecar(\"\") returned error: %v", err)
	}
	if m != nil {
		t.Fatalf("expected a nil sidecar for an empty path")
	}
	if err := m.WriteLevel(LevelSummary{}); err != nil {
		t.Errorf("WriteLevel on nil sidecar returned error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close on nil sidecar returned error: %v", err)
	}
}
