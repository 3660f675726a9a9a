// Command mpp sweeps the most-probable-path lumping engine over a range
// of stability thresholds, refining a microstate trajectory into
// metastable states and writing the sweep's trajectories, populations and
// cumulative lumping history.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lettis/clustering/clustererr"
	"github.com/lettis/clustering/config"
	"github.com/lettis/clustering/driver"
	"github.com/lettis/clustering/iohelpers"
	"github.com/lettis/clustering/telemetry"
)

var (
	flagBasename        string
	flagInput           string
	flagFreeEnergyInput string
	flagQMinFrom        float64
	flagQMinTo          float64
	flagQMinStep        float64
	flagLagtime         int
	flagConcatLimits    string
	flagConcatNFrames   int

	flagWorkers    int
	flagConfig     string
	flagLogLevel   string
	flagMetricsCSV string
)

var rootCmd = &cobra.Command{
	Use:   "mpp",
	Short: "Sweep the most-probable-path lumping engine over q_min",
	RunE:  runMPP,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagBasename, "basename", "", "output base path for every artifact this run writes (required)")
	f.StringVar(&flagInput, "input", "", "input trajectory file (required)")
	f.StringVar(&flagFreeEnergyInput, "free-energy-input", "", "input free energy column, used for future-state tie-breaks")
	f.Float64Var(&flagQMinFrom, "qmin-from", 0, "first q_min level")
	f.Float64Var(&flagQMinTo, "qmin-to", 0, "last q_min level (inclusive)")
	f.Float64Var(&flagQMinStep, "qmin-step", 0.01, "step between q_min levels")
	f.IntVar(&flagLagtime, "lagtime", 1, "transition-count lag tau")
	f.StringVar(&flagConcatLimits, "concat-limits", "", "input file of sub-trajectory boundary frame indices")
	f.IntVar(&flagConcatNFrames, "concat-nframes", 0, "fixed sub-trajectory length, if every chunk is the same size")

	f.IntVar(&flagWorkers, "workers", 0, "rank count (0: use config default)")
	f.StringVar(&flagConfig, "config", "", "path to a config override file")
	f.StringVar(&flagLogLevel, "log-level", "info", "debug|info|warn|error")
	f.StringVar(&flagMetricsCSV, "metrics-csv", "", "optional per-level metrics CSV sidecar")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mpp: %v\n", err)
		os.Exit(1)
	}
}

func runMPP(cmd *cobra.Command, args []string) error {
	if flagBasename == "" {
		return clustererr.BadArgument("--basename is required")
	}
	if flagInput == "" {
		return clustererr.BadArgument("--input is required")
	}
	if flagLagtime <= 0 {
		return clustererr.BadArgument("--lagtime must be > 0, got %d", flagLagtime)
	}
	if cmd.Flags().Changed("concat-limits") && cmd.Flags().Changed("concat-nframes") {
		return clustererr.BadArgument("--concat-limits and --concat-nframes are mutually exclusive")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := telemetry.NewLogger(flagLogLevel)

	sidecar, err := telemetry.NewMetricsSidecar(flagMetricsCSV)
	if err != nil {
		return err
	}
	defer sidecar.Close()

	T, err := iohelpers.LoadIntColumn(flagInput)
	if err != nil {
		return err
	}

	var F []float32
	if flagFreeEnergyInput != "" {
		F, err = iohelpers.LoadFloatColumn(flagFreeEnergyInput)
		if err != nil {
			return err
		}
	} else {
		F = make([]float32, len(T))
	}

	climits, diffSizeChunks, err := loadConcatLimits(cmd, len(T))
	if err != nil {
		return err
	}

	opts := driver.SweepOptions{
		Climits:        climits,
		DiffSizeChunks: diffSizeChunks,
		Tau:            flagLagtime,
		F:              F,
		QMinFrom:       float32(flagQMinFrom),
		QMinTo:         float32(flagQMinTo),
		QMinStep:       float32(flagQMinStep),
		MaxRounds:      cfg.MPP.MaxRounds,
		Logger:         logger,
	}

	result, err := driver.Sweep(T, opts, func(level driver.Level, pop map[int]int) error {
		if err := iohelpers.WriteTrajectory(flagBasename, level.QMin, level.T); err != nil {
			return err
		}
		if err := iohelpers.WritePopulationTable(flagBasename, level.QMin, pop); err != nil {
			return err
		}
		return sidecar.WriteLevel(telemetry.LevelSummary{
			QMin:       level.QMin,
			Iterations: level.Iterations,
			States:     level.States,
			Lumped:     level.Lumped,
		})
	})
	if err != nil {
		return err
	}

	entries := make([]iohelpers.TransitionEntry, 0, len(result.Transitions))
	for from, t := range result.Transitions {
		entries = append(entries, iohelpers.TransitionEntry{From: from, To: t.To, QMin: t.QMin})
	}
	if err := iohelpers.WriteTransitions(flagBasename, entries); err != nil {
		return err
	}
	if err := iohelpers.WriteMaxPopTable(flagBasename, result.MaxPop); err != nil {
		return err
	}
	if err := iohelpers.WriteMaxQMinTable(flagBasename, result.MaxQMin); err != nil {
		return err
	}

	logger.Info("mpp sweep complete", "levels", len(result.Levels), "basename", flagBasename)
	return nil
}

// loadConcatLimits builds the sub-trajectory boundaries and reports
// whether chunks differ in size: --concat-limits carries externally
// supplied, potentially uneven boundaries (diffSizeChunks=true);
// --concat-nframes describes equal-sized chunks (diffSizeChunks=false);
// neither flag treats the whole trajectory as a single chunk.
func loadConcatLimits(cmd *cobra.Command, nFrames int) ([]int, bool, error) {
	if cmd.Flags().Changed("concat-limits") {
		climits, err := iohelpers.LoadIntColumn(flagConcatLimits)
		if err != nil {
			return nil, false, err
		}
		return climits, true, nil
	}
	return concatLimitsFromNFrames(cmd.Flags().Changed("concat-nframes"), flagConcatNFrames, nFrames)
}

// concatLimitsFromNFrames is the testable core of the --concat-nframes
// and no-flag branches of loadConcatLimits.
func concatLimitsFromNFrames(haveNFrames bool, nFramesPerChunk, nFrames int) ([]int, bool, error) {
	if !haveNFrames {
		return []int{nFrames}, false, nil
	}
	if nFramesPerChunk <= 0 {
		return nil, false, clustererr.BadArgument("--concat-nframes must be > 0, got %d", nFramesPerChunk)
	}
	var climits []int
	for bound := nFramesPerChunk; bound < nFrames; bound += nFramesPerChunk {
		climits = append(climits, bound)
	}
	climits = append(climits, nFrames)
	return climits, false, nil
}
