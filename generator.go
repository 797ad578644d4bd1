package sort_bench

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const (
	MinValue = 1
	MaxValue = 10000
)

var (
	ErrInvalidSize     = errors.New("size must not be negative")
	ErrInvalidFraction = errors.New("sorted fraction must be within [0, 1]")
)

// Value is an element type the generators can produce. Integer kinds draw
// from [MinValue, MaxValue], float kinds from [MinValue.0, MaxValue.0].
type Value interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Generator produces test sequences of T from a shared Random source.
type Generator[T Value] struct {
	Source *Random
}

func NewGenerator[T Value](src *Random) *Generator[T] {
	return &Generator[T]{Source: src}
}

// IsFloat reports whether T is a floating point kind.
func IsFloat[T Value]() bool {
	half := 0.5
	return T(half) != 0
}

// Random returns size independent uniform draws.
func (g *Generator[T]) Random(size int) ([]T, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	out := make([]T, size)
	if IsFloat[T]() {
		for i := range out {
			out[i] = T(g.Source.FloatRange(MinValue, MaxValue))
		}
	} else {
		for i := range out {
			out[i] = T(g.Source.IntRange(MinValue, MaxValue))
		}
	}
	return out, nil
}

// Sorted returns a random sequence sorted ascending or descending.
func (g *Generator[T]) Sorted(size int, ascending bool) ([]T, error) {
	out, err := g.Random(size)
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	if !ascending {
		slices.Reverse(out)
	}
	return out, nil
}

// PartiallySorted returns a random sequence whose first floor(size*fraction)
// elements are sorted ascending. The tail is left untouched.
func (g *Generator[T]) PartiallySorted(size int, fraction float64) ([]T, error) {
	if err := ValidateFraction(fraction); err != nil {
		return nil, err
	}
	out, err := g.Random(size)
	if err != nil {
		return nil, err
	}
	slices.Sort(out[:SortedPrefix(size, fraction)])
	return out, nil
}

// SortedPrefix is the length of the sorted prefix for size and fraction.
func SortedPrefix(size int, fraction float64) int {
	n := int(math.Floor(float64(size) * fraction))
	return min(max(n, 0), size)
}

func ValidateFraction(fraction float64) error {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidFraction, fraction)
	}
	return nil
}
