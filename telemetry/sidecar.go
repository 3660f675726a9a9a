package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// MetricsSidecar appends one LevelSummary row per q_min level to a CSV
// file, the optional ambient output enabled by --metrics-csv. It is not
// part of the mandated output set: downstream analysis tooling only.
type MetricsSidecar struct {
	file          *os.File
	headerWritten bool
}

// NewMetricsSidecar creates path and returns a sidecar ready for
// WriteLevel. An empty path disables the sidecar: the returned
// *MetricsSidecar is nil and every method on it is then a safe no-op.
func NewMetricsSidecar(path string) (*MetricsSidecar, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating metrics sidecar %s: %w", path, err)
	}
	return &MetricsSidecar{file: f}, nil
}

// WriteLevel appends one row, writing a header on the first call.
func (m *MetricsSidecar) WriteLevel(row LevelSummary) error {
	if m == nil {
		return nil
	}
	records := []LevelSummary{row}
	if !m.headerWritten {
		if err := gocsv.Marshal(records, m.file); err != nil {
			return fmt.Errorf("writing metrics row: %w", err)
		}
		m.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, m.file); err != nil {
		return fmt.Errorf("writing metrics row: %w", err)
	}
	return nil
}

// Close flushes and closes the sidecar file.
func (m *MetricsSidecar) Close() error {
	if m == nil {
		return nil
	}
	return m.file.Close()
}
