package sort_bench

import (
	"errors"
	test "testing"

	"nickandperla.net/sort_bench/sorter"
)

func TestDistributionNames(t *test.T) {
	want := []string{
		"Random",
		"Sorted Ascending",
		"Sorted Descending",
		"Partially Sorted (33%)",
		"Partially Sorted (66%)",
	}
	for i, d := range DefaultDistributions() {
		if got := d.Name(); got != want[i] {
			t.Errorf("Name() = %q, want %q", got, want[i])
		}
	}
}

func TestParseDistribution(t *test.T) {
	for in, want := range map[string]Distribution{
		"random":       {Kind: RandomData},
		" Ascending ":  {Kind: AscendingData},
		"descending":   {Kind: DescendingData},
		"partial:0.5":  {Kind: PartialData, Fraction: 0.5},
		"PARTIAL:0.33": {Kind: PartialData, Fraction: 0.33},
	} {
		got, err := ParseDistribution(in)
		if err != nil {
			t.Errorf("ParseDistribution(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDistribution(%q) = %+v, want %+v", in, got, want)
		}
	}

	for in, want := range map[string]error{
		"bogus":         ErrUnknownDistribution,
		"partial":       ErrUnknownDistribution,
		"random:1":      ErrUnknownDistribution,
		"partial:x":     ErrInvalidFraction,
		"partial:1.01":  ErrInvalidFraction,
		"partial:-0.25": ErrInvalidFraction,
	} {
		if _, err := ParseDistribution(in); !errors.Is(err, want) {
			t.Errorf("ParseDistribution(%q) err = %v, want %v", in, err, want)
		}
	}
}

func TestGenerateShapes(t *test.T) {
	g := NewGenerator[int](NewRandom(11))

	asc, err := g.Generate(Distribution{Kind: AscendingData}, 200)
	if err != nil || !sorter.IsSorted(asc) {
		t.Fatalf("ascending: err %v, sorted %v", err, sorter.IsSorted(asc))
	}

	partial, err := g.Generate(Distribution{Kind: PartialData, Fraction: 0.5}, 200)
	if err != nil || !sorter.IsSorted(partial[:100]) {
		t.Fatalf("partial: err %v", err)
	}

	if _, err := g.Generate(Distribution{Kind: "zigzag"}, 10); !errors.Is(err, ErrUnknownDistribution) {
		t.Errorf("unknown kind err = %v", err)
	}
}
