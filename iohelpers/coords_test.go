package iohelpers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCoordinatesWhitespaceAndCommaTolerant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coords.dat")
	content := "0 0.5 1\n1.5,2.0,2.5\n3\t4\t5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	X, nRows, nCols, err := LoadCoordinates(path)
	if err != nil {
		t.Fatalf("LoadCoordinates returned error: %v", err)
	}
	if nRows != 3 || nCols != 3 {
		t.Fatalf("got (%d, %d), want (3, 3)", nRows, nCols)
	}
	want := []float32{0, 0.5, 1, 1.5, 2.0, 2.5, 3, 4, 5}
	if len(X) != len(want) {
		t.Fatalf("X = %v, want %v", X, want)
	}
	for i := range want {
		if X[i] != want[i] {
			t.Errorf("X[%d] = %v, want %v", i, X[i], want[i])
		}
	}
}

func TestLoadCoordinatesRejectsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coords.dat")
	os.WriteFile(path, []byte("1 2 3\n4 5\n"), 0644)

	_, _, _, err := LoadCoordinates(path)
	if err == nil {
		t.Fatal("expected an error for a ragged row, got nil")
	}
}
