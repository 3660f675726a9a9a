package mpp

import (
	"errors"
	"testing"

	"github.com/lettis/clustering/clustererr"
	"github.com/lettis/clustering/transition"
)

func directP(entries map[[2]int]float32) *transition.Matrix {
	M := transition.NewMatrix()
	for k, v := range entries {
		M.Set(k[0], k[1], v)
	}
	return M
}

// S5: P = [[0.9,0.1],[0.2,0.8]], q_min = 0.85, F = [0,1] -> future 1->1, 2->1.
func TestFutureStateScenarioS5(t *testing.T) {
	P := directP(map[[2]int]float32{
		{1, 1}: 0.9, {1, 2}: 0.1,
		{2, 1}: 0.2, {2, 2}: 0.8,
	})
	minF := map[int]float32{1: 0, 2: 1}

	future, err := FutureState(P, []int{1, 2}, minF, 0.85)
	if err != nil {
		t.Fatalf("FutureState returned error: %v", err)
	}
	if future[1] != 1 {
		t.Errorf("future[1] = %d, want 1 (self, P[1,1]=0.9 >= 0.85)", future[1])
	}
	if future[2] != 1 {
		t.Errorf("future[2] = %d, want 1 (highest off-diagonal probability)", future[2])
	}
}

func TestFutureStateDeadStateWhenRowMissing(t *testing.T) {
	P := transition.NewMatrix() // row 3 never touched
	_, err := FutureState(P, []int{3}, map[int]float32{}, 0.5)
	if err == nil {
		t.Fatal("expected DeadState error, got nil")
	}
	var dead *clustererr.DeadStateError
	if !errors.As(err, &dead) {
		t.Fatalf("error %v is not a DeadStateError", err)
	}
	if dead.State != 3 {
		t.Errorf("DeadStateError.State = %d, want 3", dead.State)
	}
}

func TestFutureStateTieBreaksByMinFreeEnergyThenIndex(t *testing.T) {
	// State 1 ties between states 2 and 3 at probability 0.4; state 3 has
	// the lower minimum free energy, so it wins despite the higher index.
	P := directP(map[[2]int]float32{
		{1, 1}: 0.2, {1, 2}: 0.4, {1, 3}: 0.4,
		{2, 2}: 1,
		{3, 3}: 1,
	})
	minF := map[int]float32{1: 5, 2: 3, 3: 1}

	future, err := FutureState(P, []int{1, 2, 3}, minF, 0.9)
	if err != nil {
		t.Fatalf("FutureState returned error: %v", err)
	}
	if future[1] != 3 {
		t.Errorf("future[1] = %d, want 3 (lowest minF among tied candidates)", future[1])
	}
}
