// Package transition builds and manipulates the sparse transition-count
// and transition-probability matrices the MPP lumping engine iterates on.
package transition

import "sort"

// Matrix is a zero-default sparse square matrix backed by a map of maps,
// sized implicitly by the largest row/column index ever touched. It
// favors cheap per-row nonzero iteration (the access pattern every
// consumer in this package needs) over dense storage, the same tradeoff
// an adjacency-list graph representation makes over an adjacency matrix.
type Matrix struct {
	rows map[int]map[int]float32
}

// NewMatrix returns an empty sparse matrix.
func NewMatrix() *Matrix {
	return &Matrix{rows: make(map[int]map[int]float32)}
}

// Add increments M[i][j] by delta, creating the row if needed.
func (m *Matrix) Add(i, j int, delta float32) {
	row, ok := m.rows[i]
	if !ok {
		row = make(map[int]float32)
		m.rows[i] = row
	}
	row[j] += delta
}

// Set overwrites M[i][j] with v. Setting 0 removes the entry so row
// iteration stays proportional to the true nonzero count.
func (m *Matrix) Set(i, j int, v float32) {
	if v == 0 {
		if row, ok := m.rows[i]; ok {
			delete(row, j)
		}
		return
	}
	row, ok := m.rows[i]
	if !ok {
		row = make(map[int]float32)
		m.rows[i] = row
	}
	row[j] = v
}

// Get returns M[i][j], defaulting to 0.
func (m *Matrix) Get(i, j int) float32 {
	row, ok := m.rows[i]
	if !ok {
		return 0
	}
	return row[j]
}

// RowSum returns the sum of row i's nonzero entries.
func (m *Matrix) RowSum(i int) float32 {
	var sum float32
	for _, v := range m.rows[i] {
		sum += v
	}
	return sum
}

// Row calls fn(j, v) for every nonzero entry in row i, in ascending column
// order, matching the canonical sorted-by-key iteration this repo
// requires for deterministic tie-breaking.
func (m *Matrix) Row(i int, fn func(j int, v float32)) {
	row, ok := m.rows[i]
	if !ok {
		return
	}
	cols := make([]int, 0, len(row))
	for j := range row {
		cols = append(cols, j)
	}
	sort.Ints(cols)
	for _, j := range cols {
		fn(j, row[j])
	}
}

// Rows returns every row index with at least one nonzero entry, sorted
// ascending.
func (m *Matrix) Rows() []int {
	out := make([]int, 0, len(m.rows))
	for i := range m.rows {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// HasRow reports whether row i has any nonzero entry.
func (m *Matrix) HasRow(i int) bool {
	row, ok := m.rows[i]
	return ok && len(row) > 0
}
