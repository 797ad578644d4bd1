package sort_bench

import (
	"errors"
	"math"
	"slices"
	test "testing"

	"nickandperla.net/sort_bench/sorter"
)

func checkRange[T Value](t *test.T, data []T) {
	t.Helper()
	for i, v := range data {
		if v < MinValue || v > MaxValue {
			t.Fatalf("element %d = %v outside [%d, %d]", i, v, MinValue, MaxValue)
		}
	}
}

func TestGeneratorRandom(t *test.T) {
	g := NewGenerator[int](NewRandom(1))
	data, err := g.Random(1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 1000 {
		t.Fatalf("len = %d, want 1000", len(data))
	}
	checkRange(t, data)

	floats, err := NewGenerator[float64](NewRandom(1)).Random(1000)
	if err != nil {
		t.Fatal(err)
	}
	checkRange(t, floats)
	fractional := false
	for _, f := range floats {
		if f != math.Trunc(f) {
			fractional = true
			break
		}
	}
	if !fractional {
		t.Error("float generator produced only whole numbers")
	}
}

func TestGeneratorSorted(t *test.T) {
	g := NewGenerator[int](NewRandom(2))
	asc, err := g.Sorted(500, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(asc) != 500 || !sorter.IsSorted(asc) {
		t.Fatalf("ascending output not sorted: %v", asc[:10])
	}

	desc, err := g.Sorted(500, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(desc); i++ {
		if desc[i-1] < desc[i] {
			t.Fatalf("descending output rises at %d: %d < %d", i, desc[i-1], desc[i])
		}
	}
	checkRange(t, desc)
}

func TestGeneratorPartiallySorted(t *test.T) {
	g := NewGenerator[float64](NewRandom(3))
	for _, tc := range []struct {
		size     int
		fraction float64
		prefix   int
	}{
		{100, 0.33, 33},
		{100, 0.66, 66},
		{10, 0.5, 5},
		{10, 0, 0},
		{10, 1, 10},
		{7, 0.5, 3},
	} {
		data, err := g.PartiallySorted(tc.size, tc.fraction)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != tc.size {
			t.Fatalf("len = %d, want %d", len(data), tc.size)
		}
		if got := SortedPrefix(tc.size, tc.fraction); got != tc.prefix {
			t.Errorf("SortedPrefix(%d, %v) = %d, want %d", tc.size, tc.fraction, got, tc.prefix)
		}
		if !sorter.IsSorted(data[:tc.prefix]) {
			t.Errorf("prefix of %d not sorted for fraction %v", tc.prefix, tc.fraction)
		}
	}
}

func TestGeneratorEmptyAndSingle(t *test.T) {
	g := NewGenerator[int](NewRandom(4))
	for _, size := range []int{0, 1} {
		for _, d := range DefaultDistributions() {
			data, err := g.Generate(d, size)
			if err != nil {
				t.Fatalf("%s size %d: %v", d.Name(), size, err)
			}
			if len(data) != size {
				t.Errorf("%s size %d: got %d elements", d.Name(), size, len(data))
			}
		}
	}
}

func TestGeneratorRejectsBadInput(t *test.T) {
	g := NewGenerator[int](NewRandom(5))
	if _, err := g.Random(-1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Random(-1) err = %v, want ErrInvalidSize", err)
	}
	if _, err := g.Sorted(-5, true); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Sorted(-5) err = %v, want ErrInvalidSize", err)
	}
	for _, f := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := g.PartiallySorted(10, f); !errors.Is(err, ErrInvalidFraction) {
			t.Errorf("PartiallySorted(10, %v) err = %v, want ErrInvalidFraction", f, err)
		}
	}
}

func TestGeneratorSeedReproducible(t *test.T) {
	a, _ := NewGenerator[int](NewRandom(99)).Random(50)
	b, _ := NewGenerator[int](NewRandom(99)).Random(50)
	if !slices.Equal(a, b) {
		t.Error("equal seeds produced different arrays")
	}
}

func TestIsFloat(t *test.T) {
	type score float32
	if IsFloat[int]() || IsFloat[int64]() {
		t.Error("integer kinds reported as float")
	}
	if !IsFloat[float64]() || !IsFloat[score]() {
		t.Error("float kinds not detected")
	}
}
