package mpp

import "github.com/lettis/clustering/transition"

// PathSink picks the representative sink for a most-probable path: among
// the metastable states on the path (self-transition probability above
// qMin), the one with lowest minimum free energy; ties broken by highest
// population and then by smallest index. If no state on the path is
// metastable, the whole path is considered instead.
func PathSink(path []int, P *transition.Matrix, qMin float32, minF map[int]float32, pop map[int]int) int {
	candidates := make([]int, 0, len(path))
	for _, j := range path {
		if P.Get(j, j) > qMin {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		candidates = path
	}

	best := candidates[0]
	for _, j := range candidates[1:] {
		if better(j, best, minF, pop) {
			best = j
		}
	}
	return best
}

// better reports whether candidate a should replace the current best b
// under the minF -> population -> index tie-break chain.
func better(a, b int, minF map[int]float32, pop map[int]int) bool {
	if minF[a] != minF[b] {
		return minF[a] < minF[b]
	}
	if pop[a] != pop[b] {
		return pop[a] > pop[b]
	}
	return a < b
}
