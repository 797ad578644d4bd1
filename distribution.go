package sort_bench

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrUnknownDistribution = errors.New("unknown distribution")

type DistributionKind string

const (
	RandomData     DistributionKind = "random"
	AscendingData  DistributionKind = "ascending"
	DescendingData DistributionKind = "descending"
	PartialData    DistributionKind = "partial"
)

// Distribution describes the shape of generated input. Fraction is only
// used by PartialData and is the share of the prefix that is pre-sorted.
type Distribution struct {
	Kind     DistributionKind `toml:"kind"`
	Fraction float64          `toml:"fraction"`
}

// DefaultDistributions are the five input shapes of the performance test.
func DefaultDistributions() []Distribution {
	return []Distribution{
		{Kind: RandomData},
		{Kind: AscendingData},
		{Kind: DescendingData},
		{Kind: PartialData, Fraction: 0.33},
		{Kind: PartialData, Fraction: 0.66},
	}
}

// Name is the display name used in result rows.
func (d Distribution) Name() string {
	switch d.Kind {
	case RandomData:
		return "Random"
	case AscendingData:
		return "Sorted Ascending"
	case DescendingData:
		return "Sorted Descending"
	case PartialData:
		return fmt.Sprintf("Partially Sorted (%d%%)", int(math.Round(d.Fraction*100)))
	}
	return string(d.Kind)
}

func (d Distribution) String() string {
	return d.Name()
}

func (d Distribution) Validate() error {
	switch d.Kind {
	case RandomData, AscendingData, DescendingData:
		return nil
	case PartialData:
		return ValidateFraction(d.Fraction)
	}
	return fmt.Errorf("%w %q", ErrUnknownDistribution, d.Kind)
}

// ParseDistribution reads "random", "ascending", "descending" or
// "partial:<fraction>".
func ParseDistribution(s string) (Distribution, error) {
	kind, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	d := Distribution{Kind: DistributionKind(kind)}
	if d.Kind == PartialData {
		if !hasArg {
			return d, fmt.Errorf("%w %q: partial needs a fraction, e.g. partial:0.33", ErrUnknownDistribution, s)
		}
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return d, fmt.Errorf("%w: %q", ErrInvalidFraction, arg)
		}
		d.Fraction = f
	} else if hasArg {
		return d, fmt.Errorf("%w %q: only partial takes an argument", ErrUnknownDistribution, s)
	}
	return d, d.Validate()
}

// Generate returns a fresh sequence of size elements shaped by d.
func (g *Generator[T]) Generate(d Distribution, size int) ([]T, error) {
	switch d.Kind {
	case RandomData:
		return g.Random(size)
	case AscendingData:
		return g.Sorted(size, true)
	case DescendingData:
		return g.Sorted(size, false)
	case PartialData:
		return g.PartiallySorted(size, d.Fraction)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownDistribution, d.Kind)
}
