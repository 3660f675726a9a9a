package density

import (
	"context"
	"sort"
	"testing"

	"github.com/lettis/clustering/cluster"
)

func runHighDensity(t *testing.T, X Matrix, sortedFE []int, iFrame, limit int, maxDist float32, nWorkers int) []int {
	t.Helper()
	var out []int
	err := cluster.Run(context.Background(), nWorkers, func(ctx context.Context, h cluster.Handle) error {
		r, err := HighDensityNeighborhood(ctx, h, X, sortedFE, iFrame, limit, maxDist)
		if err != nil {
			return err
		}
		if h.Rank() == 0 {
			out = r
		}
		return nil
	})
	if err != nil {
		t.Fatalf("HighDensityNeighborhood returned error: %v", err)
	}
	return out
}

func TestHighDensityNeighborhoodIncludesSelfAndRespectsCutoff(t *testing.T) {
	X := NewMatrix([]float32{0, 1, 2, 10, 11, 12}, 6, 1)
	F := []float32{0, 1, 2, 3, 4, 5}
	sortedFE := SortByFreeEnergy(F)

	got := runHighDensity(t, X, sortedFE, 0, len(sortedFE), 4, 1) // cutoff sq=4 -> within 2
	sort.Ints(got)

	found0 := false
	for _, v := range got {
		if v == 0 {
			found0 = true
		}
		d := X.Row(sortedFE[v])[0] - X.Row(sortedFE[0])[0]
		if d*d >= 4 && v != 0 {
			t.Errorf("position %d included but squared distance %v >= cutoff", v, d*d)
		}
	}
	if !found0 {
		t.Error("target position must always be included")
	}
}

func TestHighDensityNeighborhoodWorkerCountInvariant(t *testing.T) {
	X := NewMatrix([]float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 10, 1)
	F := []float32{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	sortedFE := SortByFreeEnergy(F)

	base := runHighDensity(t, X, sortedFE, 2, len(sortedFE), 9, 1)
	sort.Ints(base)
	for _, nw := range []int{1, 2, 3, 4} {
		got := runHighDensity(t, X, sortedFE, 2, len(sortedFE), 9, nw)
		sort.Ints(got)
		if len(got) != len(base) {
			t.Fatalf("nWorkers=%d: len=%d, want %d", nw, len(got), len(base))
		}
		for i := range got {
			if got[i] != base[i] {
				t.Fatalf("nWorkers=%d: result differs from single-worker baseline: %v vs %v", nw, got, base)
			}
		}
	}
}
