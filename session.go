package sort_bench

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"nickandperla.net/sort_bench/sorter"
)

var ErrEmptyArray = errors.New("no array loaded or generated")

// SortReport describes one interactive sort.
type SortReport struct {
	Algorithm sorter.Algorithm
	Size      int
	Elapsed   time.Duration
	Verified  bool
}

// Session holds the working array of the interactive menu and its last
// sorted copy.
type Session[T Value] struct {
	Array     []T
	Sorted    []T
	Generator *Generator[T]
	Clock     Clock
}

func NewSession[T Value](src *Random) *Session[T] {
	return &Session[T]{
		Generator: NewGenerator[T](src),
		Clock:     systemClock{},
	}
}

func (s *Session[T]) Load(path string) error {
	data, err := LoadArrayFile[T](path)
	if err != nil {
		return err
	}
	s.Array = data
	return nil
}

// Save writes the original array, or the sorted copy when sorted is set.
// Saving an array that was never loaded, generated or sorted fails with
// ErrEmptyArray.
func (s *Session[T]) Save(path string, sorted bool) error {
	data := s.Array
	if sorted {
		data = s.Sorted
	}
	if data == nil {
		return ErrEmptyArray
	}
	return SaveArrayFile(path, data)
}

func (s *Session[T]) GenerateRandom(size int) error {
	return s.set(s.Generator.Random(size))
}

func (s *Session[T]) GenerateSorted(size int, ascending bool) error {
	return s.set(s.Generator.Sorted(size, ascending))
}

func (s *Session[T]) GeneratePartiallySorted(size int, fraction float64) error {
	return s.set(s.Generator.PartiallySorted(size, fraction))
}

func (s *Session[T]) set(data []T, err error) error {
	if err != nil {
		return err
	}
	s.Array = data
	return nil
}

// Sort copies the working array, sorts the copy with alg and verifies that
// the copy is ordered and holds the same elements.
// An unverified result is logged and reported, not returned as an error.
func (s *Session[T]) Sort(alg sorter.Algorithm) (*SortReport, error) {
	if err := alg.Validate(); err != nil {
		return nil, err
	}
	if s.Array == nil {
		return nil, ErrEmptyArray
	}

	s.Sorted = slices.Clone(s.Array)

	start := s.Clock.Now()
	sorter.Sort(alg, s.Sorted, s.Generator.Source)
	elapsed := s.Clock.Now().Sub(start)

	report := &SortReport{
		Algorithm: alg,
		Size:      len(s.Sorted),
		Elapsed:   elapsed,
		Verified:  sorter.IsSorted(s.Sorted) && sorter.IsPermutation(s.Array, s.Sorted),
	}
	if !report.Verified {
		logrus.WithFields(logrus.Fields{
			"algorithm": alg.Name(),
			"size":      report.Size,
		}).Error("Sorted output failed verification")
	}
	return report, nil
}

// RunPerformanceTest runs the benchmark matrix with the session's random
// source. The working array is left untouched.
func (s *Session[T]) RunPerformanceTest(ctx context.Context, config *BenchmarkConfig, sink Sink) ([]*Row, error) {
	driver, err := NewDriver[T](config, s.Generator.Source, sink)
	if err != nil {
		return nil, err
	}
	return driver.Run(ctx)
}
