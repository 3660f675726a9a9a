package iohelpers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/lettis/clustering/density"
)

// WritePopulations writes one population count per line to
// "<popBase>_<radius:%f>".
func WritePopulations(popBase string, radius float64, pop []int) error {
	path := fmt.Sprintf("%s_%f", popBase, radius)
	return WriteIntColumn(path, pop)
}

// WriteNeighborhoods writes "i nh_idx nh_d nh_hd_idx nh_hd_d" per line.
func WriteNeighborhoods(path string, nh, nhHd []density.Neighbor) error {
	n := len(nh)
	return writeLines(path, n, func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%d %d %g %d %g\n",
			i, nh[i].Index, nh[i].Dist, nhHd[i].Index, nhHd[i].Dist)
		return err
	})
}

// LoadNeighborhoods reads back the format WriteNeighborhoods produces,
// for callers that want to reuse a previous run's neighbor search instead
// of recomputing it.
func LoadNeighborhoods(path string) (nh, nhHd []density.Neighbor, err error) {
	err = scanLines(path, func(line string) error {
		parts := strings.Fields(line)
		if len(parts) != 5 {
			return fmt.Errorf("want 5 fields, got %d", len(parts))
		}
		nhIdx, perr := strconv.Atoi(parts[1])
		if perr != nil {
			return perr
		}
		nhDist, perr := strconv.ParseFloat(parts[2], 32)
		if perr != nil {
			return perr
		}
		nhHdIdx, perr := strconv.Atoi(parts[3])
		if perr != nil {
			return perr
		}
		nhHdDist, perr := strconv.ParseFloat(parts[4], 32)
		if perr != nil {
			return perr
		}
		nh = append(nh, density.Neighbor{Index: nhIdx, Dist: float32(nhDist)})
		nhHd = append(nhHd, density.Neighbor{Index: nhHdIdx, Dist: float32(nhHdDist)})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return nh, nhHd, nil
}
