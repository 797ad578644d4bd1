package sort_bench

import (
	"context"
	"errors"
	"slices"
	test "testing"
	"time"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"

	"nickandperla.net/sort_bench/sorter"
)

// stepClock advances by the next step on every second reading, so each
// start/stop pair measures exactly one step.
type stepClock struct {
	now   time.Time
	steps []time.Duration
	reads int
}

func (c *stepClock) Now() time.Time {
	if c.reads%2 == 1 {
		c.now = c.now.Add(c.steps[(c.reads/2)%len(c.steps)])
	}
	c.reads++
	return c.now
}

type failingSink struct{}

func (failingSink) Append(*Row) error { return errors.New("disk full") }
func (failingSink) Close() error      { return nil }

func smallConfig() *BenchmarkConfig {
	return &BenchmarkConfig{
		Algorithms:    []string{"insertion", "heap"},
		Distributions: []Distribution{{Kind: RandomData}},
		Sizes:         []int{10, 100},
		Repeats:       3,
		Skip:          []SkipRule{{Algorithm: "insertion", MaxSize: 50}},
	}
}

func TestDriver(t *test.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	Convey("Given a driver with a fake clock", t, func() {
		config := smallConfig()
		sink := &MemorySink{}
		driver, err := NewDriver[int](config, NewRandom(1), sink)
		So(err, ShouldBeNil)
		driver.Clock = &stepClock{
			now:   time.Unix(0, 0),
			steps: []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond},
		}

		Convey("Trials of 1, 2 and 3 ms average to exactly 2 ms", func() {
			row, err := driver.RunTriple(context.Background(), sorter.Algorithm{Kind: sorter.HeapSort}, Distribution{Kind: RandomData}, 100)
			So(err, ShouldBeNil)
			So(row.AverageMs, ShouldEqual, 2.0)
			So(row.Repeats, ShouldEqual, 3)
			So(row.Failures, ShouldEqual, 0)
			So(row.StdDevMs, ShouldAlmostEqual, 0.816496580927726, 1e-9)
		})

		Convey("Run honours the skip rule and keeps row order", func() {
			rows, err := driver.Run(context.Background())
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
			So(rows[0].Algorithm, ShouldEqual, "Insertion Sort")
			So(rows[0].Size, ShouldEqual, 10)
			So(rows[1].Algorithm, ShouldEqual, "Heap Sort")
			So(rows[1].Size, ShouldEqual, 10)
			So(rows[2].Size, ShouldEqual, 100)
			So(rows[2].Distribution, ShouldEqual, "Random")

			Convey("Every row reaches the sink", func() {
				So(sink.Rows, ShouldResemble, rows)
				So(driver.Rows(), ShouldResemble, rows)
			})
		})

		Convey("A broken sort is counted and the run continues", func() {
			driver.Sort = func(alg sorter.Algorithm, data []int) {
				if alg.Kind == sorter.HeapSort {
					slices.Sort(data)
					slices.Reverse(data)
					return
				}
				sorter.Sort(alg, data, nil)
			}
			rows, err := driver.Run(context.Background())
			So(len(rows), ShouldEqual, 3)
			So(errors.Is(err, ErrVerification), ShouldBeTrue)

			var verr *VerificationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(len(verr.Rows), ShouldEqual, 2)
			So(verr.Rows[0].Failures, ShouldEqual, 3)
			So(rows[0].Failures, ShouldEqual, 0)
		})

		Convey("A cancelled context stops before the first trial", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			rows, err := driver.Run(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(rows, ShouldBeEmpty)
			So(sink.Rows, ShouldBeEmpty)
		})

		Convey("A failing sink aborts the run", func() {
			driver.Sink = failingSink{}
			rows, err := driver.Run(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "disk full")
			So(len(rows), ShouldEqual, 1)
		})
	})

	Convey("NewDriver rejects invalid configs", t, func() {
		_, err := NewDriver[int](nil, NewRandom(1), nil)
		So(err, ShouldNotBeNil)

		_, err = NewDriver[int](smallConfig(), nil, nil)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "random source")

		config := smallConfig()
		config.Repeats = 0
		_, err = NewDriver[int](config, NewRandom(1), nil)
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

		config = smallConfig()
		config.Algorithms = []string{"bogo"}
		_, err = NewDriver[int](config, NewRandom(1), nil)
		So(errors.Is(err, sorter.ErrUnknownAlgorithm), ShouldBeTrue)
	})

	Convey("Size zero and size one rows are recorded", t, func() {
		config := smallConfig()
		config.Sizes = []int{0, 1}
		config.Skip = []SkipRule{}
		driver, err := NewDriver[float64](config, NewRandom(2), nil)
		So(err, ShouldBeNil)
		rows, err := driver.Run(context.Background())
		So(err, ShouldBeNil)
		So(len(rows), ShouldEqual, 4)
		for _, r := range rows {
			So(r.Failures, ShouldEqual, 0)
			So(r.AverageMs, ShouldBeGreaterThanOrEqualTo, 0)
		}
	})
}
