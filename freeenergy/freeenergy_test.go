package freeenergy

import (
	"math"
	"testing"
)

func TestFromPopulationIsMonotoneDecreasing(t *testing.T) {
	F := FromPopulation([]int{1, 2, 10, 100})
	for i := 1; i < len(F); i++ {
		if F[i] >= F[i-1] {
			t.Fatalf("F[%d]=%v should be < F[%d]=%v as population increases", i, F[i], i-1, F[i-1])
		}
	}
}

func TestFromPopulationZeroIsInfinite(t *testing.T) {
	F := FromPopulation([]int{0})
	if !math.IsInf(float64(F[0]), 1) {
		t.Fatalf("F[0] = %v, want +Inf", F[0])
	}
}
