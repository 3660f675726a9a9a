// Command density runs the distributed density kernels: per-radius
// population counts, nearest-neighbor search, and the density-peak
// clustering pass that turns a coordinate matrix into an initial
// microstate trajectory for the mpp command to refine.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lettis/clustering/cluster"
	"github.com/lettis/clustering/clustererr"
	"github.com/lettis/clustering/config"
	"github.com/lettis/clustering/density"
	"github.com/lettis/clustering/freeenergy"
	"github.com/lettis/clustering/iohelpers"
	"github.com/lettis/clustering/telemetry"
)

var (
	flagFile               string
	flagRadius             float64
	flagRadii              string
	flagPopulation         string
	flagFreeEnergy         string
	flagFreeEnergyInput    string
	flagNearestNeighbors   string
	flagNearestNeighborsIn string
	flagOutput             string
	flagInput              string
	flagThreshold          float64
	flagOnlyInitial        bool

	flagWorkers  int
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "density",
	Short: "Density-based clustering kernels over a coordinate matrix",
	RunE:  runDensity,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagFile, "file", "", "coordinate matrix file (required)")
	f.Float64Var(&flagRadius, "radius", 0, "single population radius")
	f.StringVar(&flagRadii, "radii", "", "comma-separated list of population radii")
	f.StringVar(&flagPopulation, "population", "", "output base path for per-radius population files")
	f.StringVar(&flagFreeEnergy, "free-energy", "", "output path for computed free energy")
	f.StringVar(&flagFreeEnergyInput, "free-energy-input", "", "input path for a precomputed free energy column")
	f.StringVar(&flagNearestNeighbors, "nearest-neighbors", "", "output path for nearest-neighbor search results")
	f.StringVar(&flagNearestNeighborsIn, "nearest-neighbors-input", "", "input path for a precomputed nearest-neighbor file")
	f.StringVar(&flagOutput, "output", "", "output path for the clustered trajectory")
	f.StringVar(&flagInput, "input", "", "input path for a trajectory to resume clustering from")
	f.Float64Var(&flagThreshold, "threshold", 0, "squared distance cutoff for cluster membership")
	f.BoolVar(&flagOnlyInitial, "only-initial", false, "seed only the single densest frame, skip the remaining passes")

	f.IntVar(&flagWorkers, "workers", 0, "rank count (0: use config default)")
	f.StringVar(&flagConfig, "config", "", "path to a config override file")
	f.StringVar(&flagLogLevel, "log-level", "info", "debug|info|warn|error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "density: %v\n", err)
		os.Exit(1)
	}
}

func parseRadii(cmd *cobra.Command) ([]float64, error) {
	return parseRadiiArgs(
		cmd.Flags().Changed("radius"), cmd.Flags().Changed("radii"),
		flagRadius, flagRadii,
	)
}

// parseRadiiArgs is the testable core of parseRadii: haveRadius/haveRadii
// report whether the corresponding flag was explicitly set (a radius of
// exactly 0 is a valid value, not "unset").
func parseRadiiArgs(haveRadius, haveRadii bool, radius float64, radii string) ([]float64, error) {
	switch {
	case haveRadius && haveRadii:
		return nil, clustererr.BadArgument("--radius and --radii are mutually exclusive")
	case haveRadii:
		var out []float64
		for _, part := range strings.Split(radii, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, clustererr.BadArgument("--radii: %v", err)
			}
			out = append(out, v)
		}
		return out, nil
	case haveRadius:
		return []float64{radius}, nil
	default:
		return nil, nil
	}
}

func runDensity(cmd *cobra.Command, args []string) error {
	if flagFile == "" {
		return clustererr.BadArgument("--file is required")
	}
	radii, err := parseRadii(cmd)
	if err != nil {
		return err
	}
	if flagPopulation != "" && len(radii) == 0 {
		return clustererr.BadArgument("--population requires --radius or --radii")
	}
	if flagOutput != "" {
		if len(radii) != 1 {
			return clustererr.BadArgument("--output requires exactly one radius (via --radius or a single --radii value)")
		}
		if flagThreshold <= 0 {
			return clustererr.BadArgument("--output requires --threshold > 0")
		}
	}
	if flagNearestNeighbors != "" && flagNearestNeighborsIn != "" {
		return clustererr.BadArgument("--nearest-neighbors and --nearest-neighbors-input are mutually exclusive")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	workers := flagWorkers
	if workers <= 0 {
		workers = cfg.Cluster.Workers
	}
	logger := telemetry.NewLogger(flagLogLevel)

	rawX, nRows, nCols, err := iohelpers.LoadCoordinates(flagFile)
	if err != nil {
		return err
	}
	X := density.NewMatrix(rawX, nRows, nCols)
	ctx := context.Background()

	var pop map[float64][]int
	if len(radii) > 0 && (flagPopulation != "" || flagFreeEnergy != "" || flagOutput != "") {
		pop, err = runPopulation(ctx, workers, cfg, X, radii)
		if err != nil {
			return err
		}
		if flagPopulation != "" {
			for _, r := range radii {
				if err := iohelpers.WritePopulations(flagPopulation, r, pop[r]); err != nil {
					return err
				}
			}
			logger.Info("wrote population files", "base", flagPopulation, "radii", radii)
		}
	}

	var F []float32
	switch {
	case flagFreeEnergyInput != "":
		F, err = iohelpers.LoadFloatColumn(flagFreeEnergyInput)
		if err != nil {
			return err
		}
	case flagFreeEnergy != "" || (flagOutput != "" && len(radii) == 1):
		if pop == nil {
			return clustererr.BadArgument("computing free energy requires --radius/--radii")
		}
		F = freeenergy.FromPopulation(pop[radii[0]])
		if flagFreeEnergy != "" {
			if err := iohelpers.WriteFloatColumn(flagFreeEnergy, F); err != nil {
				return err
			}
			logger.Info("wrote free energy", "path", flagFreeEnergy)
		}
	}

	if flagNearestNeighbors != "" {
		if len(F) == 0 {
			return clustererr.BadArgument("--nearest-neighbors requires a free energy source")
		}
		nh, nhHd, err := runNearestNeighbors(ctx, workers, cfg, X, F)
		if err != nil {
			return err
		}
		if err := iohelpers.WriteNeighborhoods(flagNearestNeighbors, nh, nhHd); err != nil {
			return err
		}
		logger.Info("wrote nearest-neighbor search", "path", flagNearestNeighbors)
	}
	if flagNearestNeighborsIn != "" {
		nh, _, err := iohelpers.LoadNeighborhoods(flagNearestNeighborsIn)
		if err != nil {
			return err
		}
		logger.Info("loaded nearest-neighbor search", "path", flagNearestNeighborsIn, "rows", len(nh))
	}

	if flagOutput != "" {
		if len(F) == 0 {
			return clustererr.BadArgument("--output requires a free energy source")
		}
		state, err := runClustering(ctx, workers, X, F)
		if err != nil {
			return err
		}
		if err := iohelpers.WriteIntColumn(flagOutput, state); err != nil {
			return err
		}
		logger.Info("wrote clustered trajectory", "path", flagOutput, "frames", len(state))
	}
	return nil
}

func runPopulation(ctx context.Context, workers int, cfg *config.Config, X density.Matrix, radii []float64) (map[float64][]int, error) {
	var result map[float64][]int
	err := cluster.Run(ctx, workers, func(ctx context.Context, h cluster.Handle) error {
		pop, err := density.Population(ctx, h, X, radii, cfg.Cluster.ChunkSize)
		if err != nil {
			return err
		}
		if h.Rank() == 0 {
			result = pop
		}
		return nil
	})
	return result, err
}

func runNearestNeighbors(ctx context.Context, workers int, cfg *config.Config, X density.Matrix, F []float32) ([]density.Neighbor, []density.Neighbor, error) {
	var nh, nhHd []density.Neighbor
	err := cluster.Run(ctx, workers, func(ctx context.Context, h cluster.Handle) error {
		localNH, localNHHd, err := density.NearestNeighbors(ctx, h, X, F, cfg.Cluster.ChunkSize)
		if err != nil {
			return err
		}
		if h.Rank() == 0 {
			nh, nhHd = localNH, localNHHd
		}
		return nil
	})
	return nh, nhHd, err
}

// runClustering assigns each frame a cluster id by walking frames from
// densest to sparsest: a frame joins the cluster of the densest neighbor
// already assigned within the threshold distance, or seeds a new cluster
// if it has none. Unassigned frames (no assignment reached, or
// --only-initial was given) keep the reserved id 0.
func runClustering(ctx context.Context, workers int, X density.Matrix, F []float32) ([]int, error) {
	sortedFE := density.SortByFreeEnergy(F)
	state := make([]int, X.Rows)
	nextID := 1

	if flagInput != "" {
		prev, err := iohelpers.LoadIntColumn(flagInput)
		if err != nil {
			return nil, err
		}
		if len(prev) != X.Rows {
			return nil, clustererr.BadArgument("--input trajectory has %d frames, want %d", len(prev), X.Rows)
		}
		copy(state, prev)
		for _, id := range state {
			if id >= nextID {
				nextID = id + 1
			}
		}
	}

	limit := X.Rows
	if flagOnlyInitial {
		limit = 1
	}
	for pos := 0; pos < limit; pos++ {
		origID := sortedFE[pos]
		if state[origID] != 0 {
			continue
		}
		var members []int
		err := cluster.Run(ctx, workers, func(ctx context.Context, h cluster.Handle) error {
			local, err := density.HighDensityNeighborhood(ctx, h, X, sortedFE, pos, pos, float32(flagThreshold))
			if err != nil {
				return err
			}
			if h.Rank() == 0 {
				members = local
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		cid := 0
		for _, m := range members {
			if m == pos {
				continue
			}
			if c := state[sortedFE[m]]; c != 0 {
				cid = c
				break
			}
		}
		if cid == 0 {
			cid = nextID
			nextID++
		}
		state[origID] = cid
	}
	return state, nil
}
