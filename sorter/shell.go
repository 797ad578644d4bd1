package sorter

import (
	"fmt"
	"slices"
)

// GapVariant selects the gap sequence used by Shell.
type GapVariant byte

const (
	Knuth GapVariant = iota
	Hibbard
)

func (g GapVariant) String() string {
	switch g {
	case Knuth:
		return "Knuth"
	case Hibbard:
		return "Hibbard"
	}
	return fmt.Sprintf("GapVariant(%d)", byte(g))
}

// Valid reports whether g names a known gap sequence.
func (g GapVariant) Valid() bool {
	return g == Knuth || g == Hibbard
}

// KnuthGaps returns 3h+1 gaps for an n element slice, largest first. The
// first gap is the largest term of 1, 4, 13, 40, ... below n/3.
func KnuthGaps(n int) []int {
	if n < 2 {
		return nil
	}
	h := 1
	for 3*h+1 < n/3 {
		h = 3*h + 1
	}
	var gaps []int
	for ; h >= 1; h /= 3 {
		gaps = append(gaps, h)
	}
	return gaps
}

// HibbardGaps returns every 2^k-1 below n, largest first.
func HibbardGaps(n int) []int {
	var gaps []int
	for k := 1; (1<<k)-1 < n; k++ {
		gaps = append(gaps, (1<<k)-1)
	}
	slices.Reverse(gaps)
	return gaps
}

// Gaps returns the gap sequence of variant for an n element slice.
func Gaps(variant GapVariant, n int) []int {
	if variant == Hibbard {
		return HibbardGaps(n)
	}
	return KnuthGaps(n)
}

// Shell sorts data with a gapped insertion pass per gap of variant.
func Shell[T Element](data []T, variant GapVariant) {
	n := len(data)
	for _, gap := range Gaps(variant, n) {
		for i := gap; i < n; i++ {
			temp := data[i]
			j := i
			for j >= gap && data[j-gap] > temp {
				data[j] = data[j-gap]
				j -= gap
			}
			data[j] = temp
		}
	}
}
