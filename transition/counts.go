package transition

import "math"

// Counts builds the transition-count matrix at lag tau over trajectory T,
// honoring sub-trajectory boundaries in climits: a transition spanning a
// boundary is never counted. iMax is accepted for interface compatibility
// with callers expecting a dense backend but unused by this sparse
// backing, which sizes itself from whatever rows/columns are actually
// touched; a dense backend would need it to preallocate.
//
// The boundary check walks a single cursor into climits: a transition
// starting at i is counted iff i+tau is strictly before the next
// boundary, and the cursor advances past a boundary the instant i+1
// reaches it.
func Counts(T []int, climits []int, tau, iMax int) *Matrix {
	_ = iMax
	M := NewMatrix()
	c := 0
	for i := 0; i+tau < len(T); i++ {
		if c < len(climits) {
			if i+tau < climits[c] {
				M.Add(T[i], T[i+tau], 1)
			}
			if i+1 == climits[c] {
				c++
			}
		} else {
			M.Add(T[i], T[i+tau], 1)
		}
	}
	return M
}

// chunkBound is a half-open [start, end) slice of T belonging to one
// sub-trajectory.
type chunkBound struct {
	start, end int
}

// chunkBounds derives per-chunk [start,end) ranges from climits' absolute
// cutpoints: Δi = climits[i] - climits[i-1] with an implicit climits[-1] =
// 0, plus a trailing chunk covering whatever remains up to total. This is
// the corrected reading of the climits/length mismatch flagged as an open
// question about climits vs. chunk lengths: climits is always a
// list of cumulative cutpoints, never a list of per-chunk lengths.
func chunkBounds(climits []int, total int) []chunkBound {
	var bounds []chunkBound
	prev := 0
	for _, c := range climits {
		if c > prev {
			bounds = append(bounds, chunkBound{prev, c})
		}
		prev = c
	}
	if prev < total {
		bounds = append(bounds, chunkBound{prev, total})
	}
	return bounds
}

// WeightedCounts builds a lag-tau count matrix per sub-trajectory chunk,
// weights each chunk's row i by w_i = sqrt(row sum), accumulates w_i *
// M[i,j] across chunks, then divides every row by the cumulative w_i seen
// for that row. Rows whose cumulative weight is zero (never visited, or
// visited but with no outgoing transition in any chunk) are left zero.
func WeightedCounts(T []int, climits []int, tau int) *Matrix {
	bounds := chunkBounds(climits, len(T))
	running := NewMatrix()
	weightSum := make(map[int]float32)

	for _, b := range bounds {
		chunk := T[b.start:b.end]
		M := Counts(chunk, nil, tau, 0)
		for _, i := range M.Rows() {
			rowSum := M.RowSum(i)
			w := float32(math.Sqrt(float64(rowSum)))
			M.Row(i, func(j int, v float32) {
				running.Add(i, j, w*v)
			})
			weightSum[i] += w
		}
	}

	for i, w := range weightSum {
		if w == 0 {
			continue
		}
		cols := make([]int, 0)
		vals := make([]float32, 0)
		running.Row(i, func(j int, v float32) {
			cols = append(cols, j)
			vals = append(vals, v)
		})
		for k, j := range cols {
			running.Set(i, j, vals[k]/w)
		}
	}
	return running
}
