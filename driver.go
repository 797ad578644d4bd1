package sort_bench

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"nickandperla.net/sort_bench/sorter"
)

var ErrVerification = errors.New("sorted output failed verification")

// Clock is the time source used to measure sort calls. The default clock is
// time.Now, whose readings carry the monotonic clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SortFunc runs one sort of data in place.
type SortFunc[T Value] func(alg sorter.Algorithm, data []T)

// VerificationError lists every triple that produced unsorted output at
// least once during a run.
type VerificationError struct {
	Rows []*Row
}

func (e *VerificationError) Error() string {
	names := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		names[i] = fmt.Sprintf("%s/%s/%d (%d of %d)", r.Algorithm, r.Distribution, r.Size, r.Failures, r.Repeats)
	}
	return fmt.Sprintf("%v: %s", ErrVerification, strings.Join(names, ", "))
}

func (e *VerificationError) Unwrap() error {
	return ErrVerification
}

// Driver runs the benchmark matrix: every algorithm against every
// distribution and size, Repeats times each, emitting one averaged Row per
// triple. It runs on the calling goroutine.
type Driver[T Value] struct {
	Config    *BenchmarkConfig
	Generator *Generator[T]
	Sink      Sink
	Clock     Clock
	Sort      SortFunc[T]

	algorithms []sorter.Algorithm
	rows       []*Row
	log        *logrus.Entry
}

// NewDriver validates config and returns a driver drawing input from src and
// writing rows to sink. sink may be nil.
func NewDriver[T Value](config *BenchmarkConfig, src *Random, sink Sink) (*Driver[T], error) {
	if config == nil {
		return nil, fmt.Errorf("benchmark config cannot be nil")
	}
	if src == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	algorithms, err := config.ParsedAlgorithms()
	if err != nil {
		return nil, err
	}

	element := "int"
	if IsFloat[T]() {
		element = "float"
	}

	gen := NewGenerator[T](src)
	return &Driver[T]{
		Config:    config,
		Generator: gen,
		Sink:      sink,
		Clock:     systemClock{},
		Sort: func(alg sorter.Algorithm, data []T) {
			sorter.Sort(alg, data, gen.Source)
		},
		algorithms: algorithms,
		log: logrus.WithFields(logrus.Fields{
			"element": element,
			"repeats": config.Repeats,
		}),
	}, nil
}

// Rows returns the rows completed so far.
func (d *Driver[T]) Rows() []*Row {
	return d.rows
}

// Run executes the full matrix. Rows are appended to the sink as each triple
// completes. ctx is only checked between trials. Verification failures do
// not stop the run; they are reported as a *VerificationError once every
// triple has finished.
func (d *Driver[T]) Run(ctx context.Context) ([]*Row, error) {
	var failed []*Row

	for _, alg := range d.algorithms {
		d.log.Infof("Testing: %s", alg.Name())
		for _, dist := range d.Config.Distributions {
			d.log.Infof("  Data type: %s", dist.Name())
			for _, size := range d.Config.Sizes {
				if d.Config.Skipped(alg, size) {
					d.log.Debugf("    Size: %d skipped for %s", size, alg.Name())
					continue
				}

				row, err := d.RunTriple(ctx, alg, dist, size)
				if err != nil {
					return d.rows, err
				}
				d.log.Infof("    Size: %d... Average time: %.4f ms", size, row.AverageMs)

				d.rows = append(d.rows, row)
				if row.Failures > 0 {
					failed = append(failed, row)
				}
				if d.Sink != nil {
					if err := d.Sink.Append(row); err != nil {
						return d.rows, fmt.Errorf("failed to append result row: %w", err)
					}
				}
			}
		}
	}

	if len(failed) > 0 {
		return d.rows, &VerificationError{Rows: failed}
	}
	return d.rows, nil
}

// RunTriple performs Config.Repeats timed trials of alg on freshly generated
// dist input of size elements and averages them. Only the sort call is
// timed.
func (d *Driver[T]) RunTriple(ctx context.Context, alg sorter.Algorithm, dist Distribution, size int) (*Row, error) {
	samples := make(stats.Float64Data, 0, d.Config.Repeats)
	failures := 0

	for rep := 0; rep < d.Config.Repeats; rep++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		input, err := d.Generator.Generate(dist, size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s input of size %d: %w", dist.Name(), size, err)
		}
		data := slices.Clone(input)

		start := d.Clock.Now()
		d.Sort(alg, data)
		elapsed := d.Clock.Now().Sub(start)

		samples = append(samples, float64(elapsed)/float64(time.Millisecond))

		if !sorter.IsSorted(data) {
			failures++
			d.log.WithFields(logrus.Fields{
				"algorithm":    alg.Name(),
				"distribution": dist.Name(),
				"size":         size,
				"repeat":       rep,
			}).Error("Sorted output failed verification")
		}
	}

	return newRow(alg.Name(), dist.Name(), size, samples, failures)
}

func newRow(algorithm, distribution string, size int, samples stats.Float64Data, failures int) (*Row, error) {
	mean, err := stats.Mean(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to average %d samples: %w", len(samples), err)
	}
	// Population deviation is defined for a single sample.
	stddev, err := stats.StandardDeviationPopulation(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to compute deviation: %w", err)
	}
	return &Row{
		Algorithm:    algorithm,
		Distribution: distribution,
		Size:         size,
		AverageMs:    mean,
		StdDevMs:     stddev,
		Repeats:      len(samples),
		Failures:     failures,
	}, nil
}
