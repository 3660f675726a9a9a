package mpp

import (
	"github.com/lettis/clustering/clustererr"
	"github.com/lettis/clustering/transition"
)

// FutureState computes, for every state in names, the single-step future
// state under the stability threshold qMin: a state whose self-transition
// probability is at least qMin stays; otherwise it moves to whichever
// other state it transitions to with highest probability, ties broken by
// lowest minimum free energy and then by smallest index.
//
// A state absent from P entirely (zero row sum before normalization) has
// no outgoing probability at all and fails with clustererr.DeadState.
func FutureState(P *transition.Matrix, names []int, minF map[int]float32, qMin float32) (map[int]int, error) {
	future := make(map[int]int, len(names))
	for _, i := range names {
		if !P.HasRow(i) {
			return nil, clustererr.DeadState(i)
		}
		if P.Get(i, i) >= qMin {
			future[i] = i
			continue
		}
		bestJ := -1
		var bestP, bestMinF float32
		P.Row(i, func(j int, v float32) {
			if j == i || v <= 0 {
				return
			}
			switch {
			case bestJ == -1 || v > bestP:
				bestJ, bestP, bestMinF = j, v, minF[j]
			case v == bestP:
				mf := minF[j]
				if mf < bestMinF || (mf == bestMinF && j < bestJ) {
					bestJ, bestMinF = j, mf
				}
			}
		})
		if bestJ == -1 {
			return nil, clustererr.DeadState(i)
		}
		future[i] = bestJ
	}
	return future, nil
}
