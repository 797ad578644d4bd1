package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sb "nickandperla.net/sort_bench"
)

var benchFlags struct {
	repeats       int
	sizes         []int
	algorithms    []string
	distributions []string
	out           string
	db            string
	table         bool
	profile       string
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the full performance test matrix",
	Long: `bench runs every configured algorithm against every distribution and
size, repeating each combination and writing the average time per
combination to a CSV file as soon as it completes.`,
	Args: cobra.NoArgs,
	RunE: runBenchCmd,
}

func init() {
	flags := benchCmd.Flags()
	flags.IntVar(&benchFlags.repeats, "repeats", 0, "Trials per combination (overrides config)")
	flags.IntSliceVar(&benchFlags.sizes, "sizes", nil, "Array sizes, e.g. 1000,5000 (overrides config)")
	flags.StringSliceVar(&benchFlags.algorithms, "algorithms", nil, "Algorithms, e.g. heap,shell:hibbard,quick:random (overrides config)")
	flags.StringSliceVar(&benchFlags.distributions, "distributions", nil, "Distributions, e.g. random,descending,partial:0.5 (overrides config)")
	flags.StringVar(&benchFlags.out, "out", "", "CSV output path (overrides config)")
	flags.StringVar(&benchFlags.db, "db", "", "SQLite file to record the run in")
	flags.BoolVar(&benchFlags.table, "table", false, "Print a summary table when done")
	flags.StringVar(&benchFlags.profile, "profile", "", "Write a cpu or mem profile to the working directory")
}

func runBenchCmd(cmd *cobra.Command, _ []string) error {
	config, err := toolConfig.Clone()
	if err != nil {
		return err
	}
	if err := applyBenchFlags(cmd, config); err != nil {
		return err
	}

	switch benchFlags.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q (want cpu or mem)", benchFlags.profile)
	}

	ctx, cancel := interruptContext()
	defer cancel()

	if config.Element == sb.ElementFloat {
		return runBenchmark[float64](ctx, config, benchFlags.table)
	}
	return runBenchmark[int](ctx, config, benchFlags.table)
}

func applyBenchFlags(cmd *cobra.Command, config *sb.ToolConfig) error {
	flags := cmd.Flags()
	b := config.Benchmark
	if flags.Changed("repeats") {
		b.Repeats = benchFlags.repeats
	}
	if flags.Changed("sizes") {
		b.Sizes = benchFlags.sizes
	}
	if flags.Changed("algorithms") {
		b.Algorithms = benchFlags.algorithms
	}
	if flags.Changed("distributions") {
		b.Distributions = nil
		for _, s := range benchFlags.distributions {
			d, err := sb.ParseDistribution(s)
			if err != nil {
				return err
			}
			b.Distributions = append(b.Distributions, d)
		}
	}
	if flags.Changed("out") {
		b.Output = benchFlags.out
	}
	if flags.Changed("db") {
		config.Persistence = &sb.PersistenceConfig{
			Path: filepath.Dir(benchFlags.db),
			Name: filepath.Base(benchFlags.db),
		}
	}
	return b.Validate()
}

// openSinks builds the CSV sink plus the optional table and store sinks.
// The returned cleanup closes the database after the sinks are closed.
func openSinks(config *sb.ToolConfig, table bool) (sb.MultiSink, func(), error) {
	csv, err := sb.CreateCSVFile(config.Benchmark.Output)
	if err != nil {
		return nil, nil, err
	}
	sinks := sb.MultiSink{csv}
	cleanup := func() {}

	if table {
		sinks = append(sinks, sb.NewTableSink(os.Stdout))
	}

	if config.Persistence != nil {
		persist, err := sb.NewPersistence(config.Persistence)
		if err != nil {
			sinks.Close()
			return nil, nil, fmt.Errorf("failed to create or initialize Persistence: %w", err)
		}
		store, err := sb.NewStoreSink(persist, config.Element, config.Seed, config.Benchmark.Repeats)
		if err != nil {
			sinks.Close()
			persist.Shutdown()
			return nil, nil, err
		}
		sinks = append(sinks, store)
		cleanup = func() {
			if err := persist.Shutdown(); err != nil {
				logrus.Errorf("Failed to close result database: %v", err)
			}
		}
	}
	return sinks, cleanup, nil
}

func runBenchmark[T sb.Value](ctx context.Context, config *sb.ToolConfig, table bool) error {
	src := sb.NewRandom(config.Seed)
	logrus.WithField("seed", src.Seed()).Info("--- PERFORMANCE TEST ---")

	sinks, cleanup, err := openSinks(config, table)
	if err != nil {
		return err
	}
	defer cleanup()

	driver, err := sb.NewDriver[T](config.Benchmark, src, sinks)
	if err != nil {
		sinks.Close()
		return err
	}

	rows, runErr := driver.Run(ctx)
	if err := sinks.Close(); err != nil {
		logrus.Errorf("Failed to close result sinks: %v", err)
	}

	var verr *sb.VerificationError
	switch {
	case errors.As(runErr, &verr):
		logrus.Errorf("%d combinations produced unsorted output: %v", len(verr.Rows), verr)
	case runErr != nil:
		return runErr
	}

	logrus.Infof("Results have been saved to '%s' (%d rows)", config.Benchmark.Output, len(rows))
	return runErr
}
