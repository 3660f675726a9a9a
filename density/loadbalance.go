package density

import "math"

// triangular returns T(n) = n(n+1)/2, the count of (i,j) pairs, i<j, when
// the outer index ranges over a slab of n rows each scanning to the end of
// an (n+1)-row block. T(0) = 0.
func triangular(n int) int64 {
	if n <= 0 {
		return 0
	}
	nn := int64(n)
	return nn * (nn + 1) / 2
}

// LoadBalance partitions the upper-triangular index space of an n_rows x
// n_rows all-pairs computation across n_workers workers so that each
// worker handles an approximately equal share of the n_rows*(n_rows-1)/2
// total pairs. It returns idx[0..n_workers]: worker w owns outer rows
// [idx[w], idx[w+1]).
//
// Boundaries are solved from the last worker backward, since the last
// worker's rows have the smallest range but the densest inner loop: the
// pair count contributed by outer rows [a, n_rows) is T(n_rows-1-a), so
// solving T(k) = target for k gives k = floor(sqrt(2*target)) and the
// boundary a = n_rows - 1 - k.
func LoadBalance(nRows, nWorkers int) []int {
	if nWorkers < 1 {
		nWorkers = 1
	}
	idx := make([]int, nWorkers+1)
	idx[nWorkers] = nRows

	if nRows <= 1 {
		for w := range idx {
			idx[w] = nRows
		}
		idx[0] = 0
		return idx
	}

	total := triangular(nRows - 1)
	target := float64(total) / float64(nWorkers)

	cumulative := 0.0
	for w := nWorkers - 1; w >= 1; w-- {
		cumulative += target
		k := int(math.Floor(math.Sqrt(2 * cumulative)))
		if k < 0 {
			k = 0
		}
		if k > nRows {
			k = nRows
		}
		boundary := nRows - 1 - k
		if boundary < 0 {
			boundary = 0
		}
		if boundary > idx[w+1] {
			boundary = idx[w+1]
		}
		idx[w] = boundary
	}
	idx[0] = 0

	// Floating point rounding can occasionally produce a boundary that
	// dips below its predecessor; clamp to keep idx nondecreasing.
	for w := 1; w <= nWorkers; w++ {
		if idx[w] < idx[w-1] {
			idx[w] = idx[w-1]
		}
	}
	return idx
}

// PairCount returns the number of (i,j) pairs, i<j<nRows, with the outer
// index i in [start, end). Used by tests to verify LoadBalance's
// conservation property without re-deriving the closed form inline.
func PairCount(nRows, start, end int) int64 {
	if start >= end {
		return 0
	}
	return triangular(nRows-1-start) - triangular(nRows-1-end)
}
