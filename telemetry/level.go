package telemetry

import "log/slog"

// LevelSummary is one q_min sweep level's outcome: the row shape for
// both the --metrics-csv sidecar and structured per-level logging.
type LevelSummary struct {
	QMin       float32 `csv:"qmin"`
	Iterations int     `csv:"iterations"`
	States     int     `csv:"states"`
	Lumped     int     `csv:"lumped"`
}

// LogValue implements slog.LogValuer so a LevelSummary can be passed
// straight into slog.Info as a grouped attribute.
func (s LevelSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("qmin", float64(s.QMin)),
		slog.Int("iterations", s.Iterations),
		slog.Int("states", s.States),
		slog.Int("lumped", s.Lumped),
	)
}
