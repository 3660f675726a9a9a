package iohelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTrajectoryFilenameAndContent(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "run")

	if err := WriteTrajectory(base, 0.5, []int{1, 1, 2}); err != nil {
		t.Fatalf("WriteTrajectory: %v", err)
	}
	wantPath := base + "_traj_0.500.dat"
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("expected file %s: %v", wantPath, err)
	}
	if got := strings.TrimSpace(string(data)); got != "1\n1\n2" {
		t.Errorf("trajectory contents = %q, want %q", got, "1\n1\n2")
	}
}

func TestWriteTransitionsOrderedByFrom(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "run")

	entries := []TransitionEntry{
		{From: 5, To: 1, QMin: 0.4},
		{From: 2, To: 1, QMin: 0.3},
	}
	if err := WriteTransitions(base, entries); err != nil {
		t.Fatalf("WriteTransitions: %v", err)
	}
	data, err := os.ReadFile(base + "_transitions.dat")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "2 1 0.300\n5 1 0.400\n"
	if string(data) != want {
		t.Errorf("transitions file = %q, want %q", string(data), want)
	}
}

func TestWriteMaxTables(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "run")

	if err := WriteMaxPopTable(base, map[int]int{2: 10, 1: 20}); err != nil {
		t.Fatalf("WriteMaxPopTable: %v", err)
	}
	data, err := os.ReadFile(base + "_max_pop.dat")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "1 20\n2 10\n" {
		t.Errorf("max_pop contents = %q", string(data))
	}

	if err := WriteMaxQMinTable(base, map[int]float32{1: 0.5}); err != nil {
		t.Fatalf("WriteMaxQMinTable: %v", err)
	}
	if _, err := os.Stat(base + "_max_qmin.dat"); err != nil {
		t.Fatalf("expected max_qmin file: %v", err)
	}
}
