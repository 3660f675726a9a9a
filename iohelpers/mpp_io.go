package iohelpers

import (
	"bufio"
	"fmt"
	"sort"
)

// TransitionEntry is one row of the cumulative transitions table: the
// microstate lumped From, the sink it was lumped To, and the q_min level
// at which that lumping occurred.
type TransitionEntry struct {
	From, To int
	QMin     float32
}

// WriteTrajectory writes "<base>_traj_<qmin:%.3f>.dat", one state id per
// line.
func WriteTrajectory(base string, qmin float32, T []int) error {
	return WriteIntColumn(trajPath(base, qmin), T)
}

func trajPath(base string, qmin float32) string {
	return fmt.Sprintf("%s_traj_%.3f.dat", base, qmin)
}

// WritePopulationTable writes "<base>_pop_<qmin:%.3f>.dat", "id pop" per
// line ordered by id.
func WritePopulationTable(base string, qmin float32, pop map[int]int) error {
	path := fmt.Sprintf("%s_pop_%.3f.dat", base, qmin)
	ids := sortedKeys(pop)
	return writeLines(path, len(ids), func(w *bufio.Writer, i int) error {
		id := ids[i]
		_, err := fmt.Fprintf(w, "%d %d\n", id, pop[id])
		return err
	})
}

// WriteTransitions writes "<base>_transitions.dat", "from to qmin" per
// line ordered by from.
func WriteTransitions(base string, entries []TransitionEntry) error {
	path := base + "_transitions.dat"
	sorted := append([]TransitionEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })
	return writeLines(path, len(sorted), func(w *bufio.Writer, i int) error {
		e := sorted[i]
		_, err := fmt.Fprintf(w, "%d %d %.3f\n", e.From, e.To, e.QMin)
		return err
	})
}

// WriteMaxPopTable writes "<base>_max_pop.dat", "id value" per line
// ordered by id.
func WriteMaxPopTable(base string, maxPop map[int]int) error {
	path := base + "_max_pop.dat"
	ids := sortedKeys(maxPop)
	return writeLines(path, len(ids), func(w *bufio.Writer, i int) error {
		id := ids[i]
		_, err := fmt.Fprintf(w, "%d %d\n", id, maxPop[id])
		return err
	})
}

// WriteMaxQMinTable writes "<base>_max_qmin.dat", "id value" per line
// ordered by id.
func WriteMaxQMinTable(base string, maxQMin map[int]float32) error {
	path := base + "_max_qmin.dat"
	ids := sortedKeys(maxQMin)
	return writeLines(path, len(ids), func(w *bufio.Writer, i int) error {
		id := ids[i]
		_, err := fmt.Fprintf(w, "%d %g\n", id, maxQMin[id])
		return err
	})
}

func sortedKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
