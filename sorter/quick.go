package sorter

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// PivotVariant selects how Quick picks the pivot index of a range.
type PivotVariant byte

const (
	Left PivotVariant = iota
	Right
	Middle
	Random
)

func (p PivotVariant) String() string {
	switch p {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Middle:
		return "Middle"
	case Random:
		return "Random"
	}
	return fmt.Sprintf("PivotVariant(%d)", byte(p))
}

func (p PivotVariant) Valid() bool {
	return p <= Random
}

var (
	fallbackOnce sync.Once
	fallback     RandSource
)

// fallbackRand is used when Quick is asked for random pivots without a
// source. Seeded once per process.
func fallbackRand() RandSource {
	fallbackOnce.Do(func() {
		fallback = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	return fallback
}

// Quick sorts data with Lomuto partitioning around the pivot chosen by
// variant. rng is only consulted for the Random variant.
//
// Left and Right pivots degrade to O(n^2) comparisons on sorted input, but
// the larger side of every partition is handled iteratively so the stack
// stays O(log n) deep for all variants.
func Quick[T Element](data []T, variant PivotVariant, rng RandSource) {
	if variant == Random && rng == nil {
		rng = fallbackRand()
	}
	quickRange(data, 0, len(data)-1, variant, rng)
}

func quickRange[T Element](data []T, low, high int, variant PivotVariant, rng RandSource) {
	for low < high {
		p := partition(data, low, high, variant, rng)
		if p-low < high-p {
			quickRange(data, low, p-1, variant, rng)
			low = p + 1
		} else {
			quickRange(data, p+1, high, variant, rng)
			high = p - 1
		}
	}
}

// PivotIndex returns the index in [low, high] that variant selects.
func PivotIndex(variant PivotVariant, low, high int, rng RandSource) int {
	switch variant {
	case Left:
		return low
	case Right:
		return high
	case Random:
		return low + rng.Intn(high-low+1)
	default:
		return low + (high-low)/2
	}
}

// partition moves the pivot to high, gathers everything strictly less than
// it on the left and returns the pivot's final index.
func partition[T Element](data []T, low, high int, variant PivotVariant, rng RandSource) int {
	pi := PivotIndex(variant, low, high, rng)
	pivot := data[pi]
	data[pi], data[high] = data[high], data[pi]

	i := low
	for j := low; j < high; j++ {
		if data[j] < pivot {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[high] = data[high], data[i]
	return i
}
