// Package sorter holds the in-place sorting routines benchmarked by
// sort_bench: insertion, heap, shell and quick sort, plus the sortedness
// checker used to verify their output.
//
// Every routine orders by the natural < of the element type and treats
// slices of length 0 or 1 as already sorted.
package sorter

import (
	"golang.org/x/exp/constraints"
)

// Element is any totally ordered numeric type the routines can sort.
type Element interface {
	constraints.Integer | constraints.Float
}

// RandSource supplies pivot indexes for the Random pivot variant.
type RandSource interface {
	Intn(n int) int
}

// IsSorted reports whether data is non-decreasing.
func IsSorted[T Element](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// IsPermutation reports whether a and b hold the same multiset of values.
func IsPermutation[T Element](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}
	return true
}
