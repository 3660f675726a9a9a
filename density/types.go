// Package density implements the distributed density kernel: the
// load-balance planner, population counts, nearest-neighbor
// search and high-density neighborhoods. Every kernel takes an
// explicit cluster.Handle and is safe to run concurrently, one goroutine
// per rank, inside cluster.Run.
package density

import "math"

// NoNeighbor is the sentinel index meaning "no such neighbor exists".
// It is nRows+1, beyond the largest row index (nRows-1) of the matrix.
func NoNeighbor(nRows int) int { return nRows + 1 }

// Neighbor is a (index, squared distance) pair. A Neighbor with an index
// of NoNeighbor(nRows) and Dist of +Inf denotes "none".
type Neighbor struct {
	Index int
	Dist  float32
}

// Sentinel returns the "no neighbor found" record for a matrix with the
// given row count.
func Sentinel(nRows int) Neighbor {
	return Neighbor{Index: NoNeighbor(nRows), Dist: float32(math.Inf(1))}
}

// IsSentinel reports whether n is the "no neighbor" marker for a matrix
// with the given row count.
func (n Neighbor) IsSentinel(nRows int) bool {
	return n.Index == NoNeighbor(nRows)
}

// Matrix is a row-major, read-only view over a coordinate buffer. It is
// immutable after construction and safe to share across every rank and
// worker goroutine without locking.
type Matrix struct {
	Data  []float32
	Rows  int
	Cols  int
}

// NewMatrix wraps a row-major buffer. len(data) must equal rows*cols.
func NewMatrix(data []float32, rows, cols int) Matrix {
	return Matrix{Data: data, Rows: rows, Cols: cols}
}

// Row returns the slice of Cols values for row i, without copying.
func (m Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : i*m.Cols+m.Cols]
}
