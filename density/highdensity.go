package density

import (
	"context"
	"sort"

	"github.com/lettis/clustering/cluster"
)

// SortByFreeEnergy returns the permutation of row indices that sorts F
// ascending (lowest free energy, i.e. densest, first), the sorted_fe
// input HighDensityNeighborhood expects.
func SortByFreeEnergy(F []float32) []int {
	perm := make([]int, len(F))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool { return F[perm[a]] < F[perm[b]] })
	return perm
}

// HighDensityNeighborhood collects the positions j in [0, limit) of
// sortedFE such that X[sortedFE[j]] is within maxDist (squared) of
// X[sortedFE[iFrame]], plus iFrame itself. The result is a set
// of positions into sortedFE, not raw row indices.
func HighDensityNeighborhood(ctx context.Context, h cluster.Handle, X Matrix, sortedFE []int, iFrame, limit int, maxDist float32) ([]int, error) {
	start, end := rectangularSlab(limit, h.Size(), h.Rank())

	target := X.Row(sortedFE[iFrame])
	buf := make([]float32, X.Cols)

	local := make([]int, 0, 64)
	for j := start; j < end; j++ {
		if j == iFrame {
			local = append(local, j)
			continue
		}
		row := X.Row(sortedFE[j])
		for k := 0; k < X.Cols; k++ {
			buf[k] = row[k] - target[k]
		}
		var d float32
		for k := 0; k < X.Cols; k++ {
			d += buf[k] * buf[k]
		}
		if d < maxDist {
			local = append(local, j)
		}
	}

	payload := encodeInt64s(intsToInt64s(local))
	gathered, err := h.Gather(ctx, payload)
	if err != nil {
		return nil, err
	}

	var final []byte
	if h.Rank() == 0 {
		seen := make(map[int]struct{})
		for _, g := range gathered {
			for _, v := range decodeInt64s(g) {
				seen[int(v)] = struct{}{}
			}
		}
		seen[iFrame] = struct{}{}
		union := make([]int64, 0, len(seen))
		for v := range seen {
			union = append(union, int64(v))
		}
		sort.Slice(union, func(a, b int) bool { return union[a] < union[b] })
		final = encodeInt64s(union)
	}

	merged, err := h.Broadcast(ctx, final)
	if err != nil {
		return nil, err
	}
	out64 := decodeInt64s(merged)
	out := make([]int, len(out64))
	for i, v := range out64 {
		out[i] = int(v)
	}
	return out, nil
}

func intsToInt64s(vs []int) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = int64(v)
	}
	return out
}
