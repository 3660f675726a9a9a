// Package freeenergy provides the optional, conventional transform from a
// population count to a free-energy proxy. The core pipeline treats free
// energy as an opaque comparable value supplied by the caller; this
// helper exists only because the downstream tooling in this repo's own
// tests and CLI entry points needs a concrete F to drive, following the
// standard -ln(pop) convention for this quantity.
package freeenergy

import "math"

// FromPopulation derives a free-energy proxy from population counts:
// F[i] = -ln(pop[i]). Lower values mean denser regions. A population of 0
// (which should not occur given pop[r][i] >= 1) maps to +Inf rather than
// panicking.
func FromPopulation(pop []int) []float32 {
	out := make([]float32, len(pop))
	for i, p := range pop {
		if p <= 0 {
			out[i] = float32(math.Inf(1))
			continue
		}
		out[i] = float32(-math.Log(float64(p)))
	}
	return out
}
