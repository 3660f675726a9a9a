package iohelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lettis/clustering/density"
)

func TestWritePopulationsFilename(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "pop")

	if err := WritePopulations(base, 1.5, []int{2, 2, 1}); err != nil {
		t.Fatalf("WritePopulations: %v", err)
	}
	if _, err := os.Stat(base + "_1.500000"); err != nil {
		t.Fatalf("expected population file suffixed by radius: %v", err)
	}
}

func TestWriteNeighborhoodsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nh.dat")

	nh := []density.Neighbor{{Index: 1, Dist: 0.25}}
	nhHd := []density.Neighbor{{Index: 3, Dist: 6.25}}
	if err := WriteNeighborhoods(path, nh, nhHd); err != nil {
		t.Fatalf("WriteNeighborhoods: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "0 1 0.25 3 6.25\n"
	if string(data) != want {
		t.Errorf("neighborhoods file = %q, want %q", string(data), want)
	}
}

func TestLoadNeighborhoodsRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nh.dat")

	nh := []density.Neighbor{{Index: 1, Dist: 0.25}, {Index: 0, Dist: 0.5}}
	nhHd := []density.Neighbor{{Index: 3, Dist: 6.25}, {Index: 3, Dist: 7}}
	if err := WriteNeighborhoods(path, nh, nhHd); err != nil {
		t.Fatalf("WriteNeighborhoods: %v", err)
	}

	gotNH, gotNHHd, err := LoadNeighborhoods(path)
	if err != nil {
		t.Fatalf("LoadNeighborhoods: %v", err)
	}
	if len(gotNH) != len(nh) || len(gotNHHd) != len(nhHd) {
		t.Fatalf("LoadNeighborhoods returned %d/%d rows, want %d/%d", len(gotNH), len(gotNHHd), len(nh), len(nhHd))
	}
	for i := range nh {
		if gotNH[i] != nh[i] {
			t.Errorf("nh[%d] = %+v, want %+v", i, gotNH[i], nh[i])
		}
		if gotNHHd[i] != nhHd[i] {
			t.Errorf("nhHd[%d] = %+v, want %+v", i, gotNHHd[i], nhHd[i])
		}
	}
}
