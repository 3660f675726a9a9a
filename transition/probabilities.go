package transition

// RowNormalize divides each row i in names by its row sum, producing a
// transition-probability matrix. Rows whose sum is zero are left zero
// rather than divided (a "dead" row, handled by the MPP engine's
// DeadState check rather than here).
func RowNormalize(M *Matrix, names []int) *Matrix {
	P := NewMatrix()
	for _, i := range names {
		rowSum := M.RowSum(i)
		if rowSum == 0 {
			continue
		}
		M.Row(i, func(j int, v float32) {
			P.Set(i, j, v/rowSum)
		})
	}
	return P
}

// Lump sums P's entries into macrostate blocks defined by sinks: the
// macrostates are range(sinks), each macrostate a's microstates are
// {k : sinks[k] = a}, and the returned matrix has
// P'[a,b] = sum_{k in a, l in b} P[k,l].
//
// This is a sum, not a renormalization: the returned matrix is not
// row-stochastic in general, even if P was. Callers that need a
// transition-probability matrix back must call RowNormalize on the
// result themselves.
func Lump(P *Matrix, sinks map[int]int) *Matrix {
	out := NewMatrix()
	for _, k := range P.Rows() {
		a, ok := sinks[k]
		if !ok {
			a = k
		}
		P.Row(k, func(l int, v float32) {
			b, ok := sinks[l]
			if !ok {
				b = l
			}
			out.Add(a, b, v)
		})
	}
	return out
}
