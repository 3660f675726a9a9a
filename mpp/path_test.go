package mpp

import "testing"

func TestMostProbablePathStopsAtLoopClosure(t *testing.T) {
	future := map[int]int{1: 1}
	if got := MostProbablePath(future, 1); len(got) != 1 || got[0] != 1 {
		t.Errorf("path from a self-loop state = %v, want [1]", got)
	}
}

// S5: path starting at state 2 under future {1:1, 2:1} is [2,1].
func TestMostProbablePathScenarioS5(t *testing.T) {
	future := map[int]int{1: 1, 2: 1}
	got := MostProbablePath(future, 2)
	want := []int{2, 1}
	if len(got) != len(want) {
		t.Fatalf("path = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path = %v, want %v", got, want)
		}
	}
}

func TestMostProbablePathThroughALongerCycle(t *testing.T) {
	future := map[int]int{1: 2, 2: 3, 3: 1}
	got := MostProbablePath(future, 1)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("path = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path = %v, want %v", got, want)
		}
	}
}
