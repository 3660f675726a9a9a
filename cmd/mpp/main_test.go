package main

import (
	"errors"
	"testing"

	"github.com/lettis/clustering/clustererr"
)

func TestConcatLimitsFromNFramesNoFlag(t *testing.T) {
	got, diff, err := concatLimitsFromNFrames(false, 0, 10)
	if err != nil {
		t.Fatalf("concatLimitsFromNFrames: %v", err)
	}
	if diff {
		t.Errorf("diffSizeChunks = true, want false when no flag is given")
	}
	if len(got) != 1 || got[0] != 10 {
		t.Errorf("got %v, want [10] (whole trajectory as one chunk)", got)
	}
}

func TestConcatLimitsFromNFramesEvenSplit(t *testing.T) {
	got, diff, err := concatLimitsFromNFrames(true, 4, 10)
	if err != nil {
		t.Fatalf("concatLimitsFromNFrames: %v", err)
	}
	if diff {
		t.Errorf("diffSizeChunks = true, want false for fixed-size chunks")
	}
	want := []int{4, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestConcatLimitsFromNFramesRejectsNonPositive(t *testing.T) {
	_, _, err := concatLimitsFromNFrames(true, 0, 10)
	if !errors.Is(err, clustererr.ErrBadArgument) {
		t.Fatalf("got %v, want ErrBadArgument", err)
	}
}
