// Package cluster provides the in-process SPMD substrate that the density
// kernels ride on: a Group of ranks communicating through gather, broadcast
// and barrier collectives, plus a ChunkPool for intra-rank data-parallel
// loops. There are no goroutine-local or package-level globals; every
// collective is reached through a Handle passed by value into kernel calls.
package cluster

import (
	"context"
	"sync"

	"github.com/lettis/clustering/clustererr"
)

// round is one collective call shared by all ranks that reach it. Ranks are
// matched to a round purely by call order, the same way a real MPI
// collective is matched by program order rather than an explicit tag.
type round struct {
	payloads [][]byte
	count    int
	done     chan struct{}
}

// Group is the SPMD group every rank belongs to. It is created once by the
// driver and never mutated directly by kernel code; kernels only see the
// per-rank Handle.
type Group struct {
	size int

	mu           sync.Mutex
	currentRound int
	rounds       map[int]*round
}

// NewGroup creates a Group of the given size. size must be >= 1.
func NewGroup(size int) *Group {
	if size < 1 {
		size = 1
	}
	return &Group{
		size:   size,
		rounds: make(map[int]*round),
	}
}

// Handle is the per-rank participant in a Group's collectives. It is a
// small value type: pass it by value into every kernel call.
type Handle struct {
	group *Group
	rank  int
}

// Rank returns this handle's 0-based rank within its group.
func (h Handle) Rank() int { return h.rank }

// Size returns the number of ranks in this handle's group.
func (h Handle) Size() int { return h.group.size }

// collective is the shared rendezvous underlying Gather, Broadcast and
// Barrier: every rank contributes its payload and blocks until all size
// ranks have arrived, then all ranks observe the same payload slice
// (indexed by rank).
func (g *Group) collective(ctx context.Context, rank int, payload []byte) ([][]byte, error) {
	g.mu.Lock()
	idx := g.currentRound
	r, ok := g.rounds[idx]
	if !ok {
		r = &round{payloads: make([][]byte, g.size), done: make(chan struct{})}
		g.rounds[idx] = r
	}
	r.payloads[rank] = payload
	r.count++
	last := r.count == g.size
	if last {
		delete(g.rounds, idx)
		g.currentRound++
	}
	g.mu.Unlock()

	if last {
		close(r.done)
		return r.payloads, nil
	}

	select {
	case <-r.done:
		return r.payloads, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Gather sends payload to rank 0 and blocks until every rank has arrived.
// Rank 0 receives the complete, rank-ordered slice of payloads; every other
// rank receives nil. This mirrors an MPI_Gather with root 0.
func (h Handle) Gather(ctx context.Context, payload []byte) ([][]byte, error) {
	all, err := h.group.collective(ctx, h.rank, payload)
	if err != nil {
		return nil, clustererr.ReductionFailure("gather", err)
	}
	if h.rank != 0 {
		return nil, nil
	}
	return all, nil
}

// Broadcast distributes rank 0's payload to every rank, including rank 0
// itself. Non-root ranks should pass nil; their payload is ignored.
func (h Handle) Broadcast(ctx context.Context, payload []byte) ([]byte, error) {
	all, err := h.group.collective(ctx, h.rank, payload)
	if err != nil {
		return nil, clustererr.ReductionFailure("broadcast", err)
	}
	return all[0], nil
}

// Barrier blocks until every rank in the group has called Barrier.
func (h Handle) Barrier(ctx context.Context) error {
	_, err := h.group.collective(ctx, h.rank, nil)
	if err != nil {
		return clustererr.ReductionFailure("barrier", err)
	}
	return nil
}

// Run spawns one goroutine per rank in a fresh Group of the given size and
// runs fn on each, passing that rank's Handle. It blocks until every rank
// returns, then returns the first non-nil error encountered (by rank
// order): fatal errors terminate the whole worker group, but a returned
// error still lets every rank finish its current collective round rather
// than deadlocking the others, since fn is expected to propagate ctx
// cancellation into any collective it's blocked on.
func Run(ctx context.Context, size int, fn func(ctx context.Context, h Handle) error) error {
	g := NewGroup(size)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, size)
	var wg sync.WaitGroup
	for r := 0; r < size; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			errs[rank] = fn(ctx, Handle{group: g, rank: rank})
			if errs[rank] != nil {
				cancel()
			}
		}(r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
