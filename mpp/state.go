// Package mpp implements the most-probable-path lumping engine: given a
// microstate trajectory and per-frame free energies, it iteratively merges
// microstates into metastable sinks until the trajectory stops changing.
package mpp

import "sort"

// uniqueSorted returns the distinct values of T in ascending order.
func uniqueSorted(T []int) []int {
	seen := make(map[int]struct{})
	for _, v := range T {
		seen[v] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// minFreeEnergies returns, for each state appearing in T, the minimum F
// value among the frames assigned to it.
func minFreeEnergies(T []int, F []float32) map[int]float32 {
	out := make(map[int]float32)
	for i, s := range T {
		f := F[i]
		if cur, ok := out[s]; !ok || f < cur {
			out[s] = f
		}
	}
	return out
}

// populations returns, for each state appearing in T, its frame count.
func populations(T []int) map[int]int {
	out := make(map[int]int)
	for _, s := range T {
		out[s]++
	}
	return out
}
