package density

import "gonum.org/v1/gonum/blas/blas32"

// scratchDist computes the squared Euclidean distance between rows i and j
// of m, using buf (len(buf) >= m.Cols) as scratch for the difference
// vector so the hot pairwise loop doesn't allocate. The dot
// product itself goes through blas32, the same BLAS entry point the
// ambient stack's SIMD benchmarks exercise for float32 vector math.
func scratchDist(m Matrix, i, j int, buf []float32) float32 {
	xi := m.Row(i)
	xj := m.Row(j)
	d := buf[:m.Cols]
	for k := 0; k < m.Cols; k++ {
		d[k] = xi[k] - xj[k]
	}
	v := blas32.Vector{N: m.Cols, Inc: 1, Data: d}
	return blas32.Dot(v, v)
}
