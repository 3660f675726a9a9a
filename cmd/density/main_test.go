package main

import (
	"errors"
	"testing"

	"github.com/lettis/clustering/clustererr"
)

func TestParseRadiiArgsSingleRadius(t *testing.T) {
	got, err := parseRadiiArgs(true, false, 1.5, "")
	if err != nil {
		t.Fatalf("parseRadiiArgs: %v", err)
	}
	if len(got) != 1 || got[0] != 1.5 {
		t.Errorf("got %v, want [1.5]", got)
	}
}

func TestParseRadiiArgsList(t *testing.T) {
	got, err := parseRadiiArgs(false, true, 0, "1.0, 2.5,3")
	if err != nil {
		t.Fatalf("parseRadiiArgs: %v", err)
	}
	want := []float64{1.0, 2.5, 3.0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseRadiiArgsMutuallyExclusive(t *testing.T) {
	_, err := parseRadiiArgs(true, true, 1, "1,2")
	if !errors.Is(err, clustererr.ErrBadArgument) {
		t.Fatalf("got %v, want ErrBadArgument", err)
	}
}

func TestParseRadiiArgsNeitherGiven(t *testing.T) {
	got, err := parseRadiiArgs(false, false, 0, "")
	if err != nil {
		t.Fatalf("parseRadiiArgs: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestParseRadiiArgsZeroRadiusIsExplicit(t *testing.T) {
	got, err := parseRadiiArgs(true, false, 0, "")
	if err != nil {
		t.Fatalf("parseRadiiArgs: %v", err)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("got %v, want [0] (r<=0 yields self-only counts, not an error)", got)
	}
}
