// Package driver sweeps the MPP lumping engine over a range of stability
// thresholds, carrying the refined trajectory from one q_min level into
// the next and accumulating a cumulative lumping history.
package driver

import (
	"log/slog"
	"sort"

	"github.com/lettis/clustering/clustererr"
	"github.com/lettis/clustering/mpp"
)

// Transition records the sink a microstate was lumped into and the q_min
// level at which that lumping first occurred.
type Transition struct {
	To   int
	QMin float32
}

// Level summarizes one q_min step of the sweep, for logging and for the
// optional metrics sidecar.
type Level struct {
	QMin       float32
	Iterations int
	States     int
	Lumped     int
	T          []int
}

// SweepOptions configures a full q_min sweep.
type SweepOptions struct {
	Climits        []int
	DiffSizeChunks bool
	Tau            int
	F              []float32
	QMinFrom       float32
	QMinTo         float32
	QMinStep       float32
	MaxRounds      int
	Logger         *slog.Logger
}

// SweepResult is the accumulated outcome of every level in a sweep.
type SweepResult struct {
	Levels      []Level
	Transitions map[int]Transition
	MaxPop      map[int]int
	MaxQMin     map[int]float32
}

// Sweep runs the MPP lumping engine once per q_min level from QMinFrom to
// QMinTo (inclusive) in steps of QMinStep, feeding each level's refined
// trajectory into the next. onLevel, if non-nil, is called after every
// level with the trajectory and per-state population for that level so a
// caller can write out artifacts without this package knowing about file
// formats.
func Sweep(T []int, opts SweepOptions, onLevel func(level Level, pop map[int]int) error) (*SweepResult, error) {
	if opts.QMinStep <= 0 {
		return nil, clustererr.BadArgument("qmin-step must be positive, got %v", opts.QMinStep)
	}
	if opts.QMinTo < opts.QMinFrom {
		return nil, clustererr.BadArgument("qmin-to (%v) must be >= qmin-from (%v)", opts.QMinTo, opts.QMinFrom)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, s := range T {
		if s == 0 {
			logger.Warn("trajectory contains state id 0; density pre-seeding may be missing")
			break
		}
	}

	result := &SweepResult{
		Transitions: make(map[int]Transition),
		MaxPop:      make(map[int]int),
		MaxQMin:     make(map[int]float32),
	}

	cur := append([]int(nil), T...)
	for q := opts.QMinFrom; q <= opts.QMinTo+opts.QMinStep/2; q += opts.QMinStep {
		r, err := mpp.Run(cur, mpp.Options{
			Climits:        opts.Climits,
			DiffSizeChunks: opts.DiffSizeChunks,
			QMin:           q,
			Tau:            opts.Tau,
			F:              opts.F,
			MaxRounds:      opts.MaxRounds,
		})
		if err != nil {
			return nil, err
		}

		froms := make([]int, 0, len(r.S))
		for from := range r.S {
			froms = append(froms, from)
		}
		sort.Ints(froms)
		for _, from := range froms {
			result.Transitions[from] = Transition{To: r.S[from], QMin: q}
		}

		pop := make(map[int]int)
		for _, s := range r.T {
			pop[s]++
		}
		for id, p := range pop {
			if p > result.MaxPop[id] {
				result.MaxPop[id] = p
			}
			if q > result.MaxQMin[id] {
				result.MaxQMin[id] = q
			}
		}

		level := Level{
			QMin:       q,
			Iterations: r.Rounds,
			States:     uniqueCount(r.T),
			Lumped:     len(r.S),
			T:          r.T,
		}
		result.Levels = append(result.Levels, level)

		logger.Info("mpp sweep level",
			"qmin", level.QMin,
			"iterations", level.Iterations,
			"states", level.States,
			"lumped", level.Lumped,
		)

		if onLevel != nil {
			if err := onLevel(level, pop); err != nil {
				return nil, err
			}
		}

		cur = r.T
	}
	return result, nil
}

func uniqueCount(T []int) int {
	seen := make(map[int]struct{}, len(T))
	for _, v := range T {
		seen[v] = struct{}{}
	}
	return len(seen)
}
