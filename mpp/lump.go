package mpp

import (
	"github.com/lettis/clustering/clustererr"
	"github.com/lettis/clustering/transition"
)

// MaxRounds bounds the fixed-point lumping iteration. A trajectory that
// has not stabilized within this many rounds is treated as non-converging
// rather than looped on forever.
const MaxRounds = 100

// Result is the outcome of one Run: the refined trajectory and the
// lumping map accumulated across every round it took to reach it.
type Result struct {
	T      []int
	S      map[int]int
	Rounds int
}

// Options configures one Run at a fixed qMin.
type Options struct {
	Climits        []int
	DiffSizeChunks bool
	QMin           float32
	Tau            int
	F              []float32
	MaxRounds      int
}

// Run iteratively builds the transition matrix, computes future states,
// traces most-probable paths, picks sinks, and lumps microstates into
// those sinks, repeating until the trajectory no longer changes or
// Options.MaxRounds (default MaxRounds) is exhausted, in which case it
// fails with clustererr.NotConverged.
//
// The returned lumping map S only carries entries where from != to,
// composed across every round of this single call.
func Run(T []int, opts Options) (*Result, error) {
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = MaxRounds
	}

	cur := append([]int(nil), T...)
	S := make(map[int]int)

	for round := 0; round < maxRounds; round++ {
		names := uniqueSorted(cur)

		var M *transition.Matrix
		if opts.DiffSizeChunks {
			M = transition.WeightedCounts(cur, opts.Climits, opts.Tau)
		} else {
			M = transition.Counts(cur, opts.Climits, opts.Tau, 0)
		}
		P := transition.RowNormalize(M, names)

		minF := minFreeEnergies(cur, opts.F)
		pop := populations(cur)

		future, err := FutureState(P, names, minF, opts.QMin)
		if err != nil {
			return nil, err
		}

		sinks := make(map[int]int, len(names))
		for _, i := range names {
			path := MostProbablePath(future, i)
			sinks[i] = PathSink(path, P, opts.QMin, minF, pop)
		}

		next := make([]int, len(cur))
		changed := false
		for idx, s := range cur {
			ns := sinks[s]
			next[idx] = ns
			if ns != s {
				changed = true
			}
		}
		for from, to := range sinks {
			if from != to {
				S[from] = to
			}
		}

		cur = next
		if !changed {
			return &Result{T: cur, S: S, Rounds: round + 1}, nil
		}
	}
	return nil, clustererr.NotConverged(maxRounds)
}
