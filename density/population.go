package density

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/lettis/clustering/cluster"
	"github.com/lettis/clustering/clustererr"
)

// radiusSq pairs a caller-supplied radius with its squared value, sorted
// descending so the pairwise loop below can early-exit on the first miss.
type radiusSq struct {
	radius float64
	sq     float32
}

// Population computes, for every radius, the number of rows within that
// radius of each frame (including the frame itself). h must be
// one rank of a cluster.Group whose every other rank is concurrently
// calling Population with the same X, radii and chunkSize; the kernel
// handles the triangular partition, atomic intra-rank accumulation and
// inter-rank reduction itself.
func Population(ctx context.Context, h cluster.Handle, X Matrix, radii []float64, chunkSize int) (map[float64][]int, error) {
	if len(radii) == 0 {
		return nil, clustererr.BadArgument("radii must not be empty")
	}
	if chunkSize <= 0 {
		chunkSize = 1024
	}

	sorted := make([]radiusSq, len(radii))
	for i, r := range radii {
		sorted[i] = radiusSq{radius: r, sq: float32(r * r)}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].radius > sorted[j].radius })

	nRows := X.Rows
	counters := make([][]int64, len(sorted))
	atomics := make([][]atomic.Int64, len(sorted))
	for i := range sorted {
		atomics[i] = make([]atomic.Int64, nRows)
	}

	idx := LoadBalance(nRows, h.Size())
	start, end := idx[h.Rank()], idx[h.Rank()+1]

	numWorkers := runtime.GOMAXPROCS(0)
	scratch := make([][]float32, numWorkers)
	for i := range scratch {
		scratch[i] = make([]float32, X.Cols)
	}
	pool := cluster.NewChunkPool(numWorkers)
	defer pool.Stop()

	pool.RunRange(start, end, chunkSize, func(workerID, s, e int) {
		buf := scratch[workerID]
		for i := s; i < e; i++ {
			for j := i + 1; j < nRows; j++ {
				d := scratchDist(X, i, j, buf)
				for ri := range sorted {
					if d >= sorted[ri].sq {
						break
					}
					atomics[ri][i].Add(1)
					atomics[ri][j].Add(1)
				}
			}
		}
	})

	for i := range sorted {
		counters[i] = make([]int64, nRows)
		for row := range counters[i] {
			counters[i][row] = atomics[i][row].Load()
		}
	}

	payload := make([]byte, 0, 8*nRows*len(sorted))
	for _, c := range counters {
		payload = append(payload, encodeInt64s(c)...)
	}

	gathered, err := h.Gather(ctx, payload)
	if err != nil {
		return nil, err
	}

	var final []byte
	if h.Rank() == 0 {
		sum := make([]int64, nRows*len(sorted))
		for _, g := range gathered {
			vs := decodeInt64s(g)
			for i, v := range vs {
				sum[i] += v
			}
		}
		final = encodeInt64s(sum)
	}

	merged, err := h.Broadcast(ctx, final)
	if err != nil {
		return nil, err
	}
	flat := decodeInt64s(merged)

	result := make(map[float64][]int, len(sorted))
	for i, rs := range sorted {
		out := make([]int, nRows)
		base := i * nRows
		for row := 0; row < nRows; row++ {
			out[row] = int(flat[base+row]) + 1 // self-count
		}
		result[rs.radius] = out
	}
	return result, nil
}
