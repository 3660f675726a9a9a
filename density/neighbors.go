package density

import (
	"context"
	"runtime"

	"github.com/lettis/clustering/cluster"
)

// NearestNeighbors computes, for every frame, the index of its globally
// closest neighbor (NH) and the index of its closest lower-free-energy
// neighbor (NH_hd restricted to the single nearest one, not the whole
// high-density set built by HighDensityNeighborhood). Ties on
// equal distance keep the first (lowest-index) candidate encountered.
//
// The partition here is rectangular rather than triangular: every rank
// gets an equal slab of rows and scans every other row in full, since each
// i must be compared against the entire matrix, not just a j > i
// remainder.
func NearestNeighbors(ctx context.Context, h cluster.Handle, X Matrix, F []float32, chunkSize int) ([]Neighbor, []Neighbor, error) {
	nRows := X.Rows
	if chunkSize <= 0 {
		chunkSize = 1024
	}

	start, end := rectangularSlab(nRows, h.Size(), h.Rank())

	nh := make([]Neighbor, nRows)
	nhHd := make([]Neighbor, nRows)
	for i := range nh {
		nh[i] = Sentinel(nRows)
		nhHd[i] = Sentinel(nRows)
	}

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
			best := Sentinel(nRows)
			bestHd := Sentinel(nRows)
			for j := 0; j < nRows; j++ {
				if j == i {
					continue
				}
				d := scratchDist(X, i, j, buf)
				if d < best.Dist {
					best = Neighbor{Index: j, Dist: d}
				}
				if F[j] < F[i] && d < bestHd.Dist {
					bestHd = Neighbor{Index: j, Dist: d}
				}
			}
			nh[i] = best
			nhHd[i] = bestHd
		}
	})

	// Encode this rank's rows as two parallel buffers: int64 indices and
	// float32 distances for (nh, nhHd), covering only [start,end) but sized
	// to the full matrix so root can overlay by row index unambiguously.
	payload := encodeNeighborRange(nRows, start, end, nh, nhHd)

	gathered, err := h.Gather(ctx, payload)
	if err != nil {
		return nil, nil, err
	}

	var final []byte
	if h.Rank() == 0 {
		mergedNh := make([]Neighbor, nRows)
		mergedHd := make([]Neighbor, nRows)
		for i := range mergedNh {
			mergedNh[i] = Sentinel(nRows)
			mergedHd[i] = Sentinel(nRows)
		}
		for _, g := range gathered {
			decodeNeighborRangeInto(g, mergedNh, mergedHd)
		}
		final = encodeNeighborRange(nRows, 0, nRows, mergedNh, mergedHd)
	}

	merged, err := h.Broadcast(ctx, final)
	if err != nil {
		return nil, nil, err
	}

	outNh := make([]Neighbor, nRows)
	outHd := make([]Neighbor, nRows)
	for i := range outNh {
		outNh[i] = Sentinel(nRows)
		outHd[i] = Sentinel(nRows)
	}
	decodeNeighborRangeInto(merged, outNh, outHd)
	return outNh, outHd, nil
}

// rectangularSlab splits nRows into size equal-ish contiguous slabs and
// returns the [start, end) slab owned by rank.
func rectangularSlab(nRows, size, rank int) (int, int) {
	if size < 1 {
		size = 1
	}
	chunk := (nRows + size - 1) / size
	start := rank * chunk
	end := start + chunk
	if start > nRows {
		start = nRows
	}
	if end > nRows {
		end = nRows
	}
	return start, end
}

// neighbor wire format: an 8-byte length L of the index buffer, then the
// index buffer (L bytes of int64: rowStart, rowEnd, then nh.Index, hd.Index
// for each row in [rowStart,rowEnd)), then the distance buffer (float32:
// nh.Dist, hd.Dist for each row in the same order).
func encodeNeighborRange(nRows, start, end int, nh, nhHd []Neighbor) []byte {
	n := end - start
	idx := make([]int64, 2+2*n)
	dist := make([]float32, 2*n)
	idx[0] = int64(start)
	idx[1] = int64(end)
	for k, i := 0, start; i < end; i, k = i+1, k+1 {
		idx[2+2*k] = int64(nh[i].Index)
		idx[2+2*k+1] = int64(nhHd[i].Index)
		dist[2*k] = nh[i].Dist
		dist[2*k+1] = nhHd[i].Dist
	}
	idxBytes := encodeInt64s(idx)
	distBytes := encodeFloat32s(dist)
	out := make([]byte, 8+len(idxBytes)+len(distBytes))
	putUint64Len(out, len(idxBytes))
	copy(out[8:], idxBytes)
	copy(out[8+len(idxBytes):], distBytes)
	return out
}

func decodeNeighborRangeInto(buf []byte, nh, nhHd []Neighbor) {
	idxLen := int(getUint64Len(buf))
	idx := decodeInt64s(buf[8 : 8+idxLen])
	dist := decodeFloat32s(buf[8+idxLen:])

	start := int(idx[0])
	end := int(idx[1])
	for k, i := 0, start; i < end; i, k = i+1, k+1 {
		nh[i] = Neighbor{Index: int(idx[2+2*k]), Dist: dist[2*k]}
		nhHd[i] = Neighbor{Index: int(idx[2+2*k+1]), Dist: dist[2*k+1]}
	}
}

func putUint64Len(b []byte, v int) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getUint64Len(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
