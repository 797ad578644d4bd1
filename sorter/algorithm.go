package sorter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xrash/smetrics"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown sorting algorithm")
	ErrUnknownVariant   = errors.New("unknown algorithm variant")
)

// Kind identifies one of the four sorting routines.
type Kind byte

const (
	InsertionSort Kind = iota + 1
	HeapSort
	ShellSort
	QuickSort
)

var kindKeys = map[Kind]string{
	InsertionSort: "insertion",
	HeapSort:      "heap",
	ShellSort:     "shell",
	QuickSort:     "quick",
}

var gapKeys = map[string]GapVariant{
	"knuth":   Knuth,
	"hibbard": Hibbard,
}

var pivotKeys = map[string]PivotVariant{
	"left":   Left,
	"right":  Right,
	"middle": Middle,
	"random": Random,
}

// Algorithm selects a routine and, for Shell and Quick, its variant. Gap is
// ignored unless Kind is ShellSort and Pivot unless Kind is QuickSort.
type Algorithm struct {
	Kind  Kind
	Gap   GapVariant
	Pivot PivotVariant
}

// Standard returns the algorithms used by the performance test: Shell with
// Knuth gaps and Quick with the middle pivot.
func Standard() []Algorithm {
	return []Algorithm{
		{Kind: InsertionSort},
		{Kind: HeapSort},
		{Kind: ShellSort, Gap: Knuth},
		{Kind: QuickSort, Pivot: Middle},
	}
}

// Name is the display name used in result rows.
func (a Algorithm) Name() string {
	switch a.Kind {
	case InsertionSort:
		return "Insertion Sort"
	case HeapSort:
		return "Heap Sort"
	case ShellSort:
		return fmt.Sprintf("Shell Sort (%s)", a.Gap)
	case QuickSort:
		return fmt.Sprintf("Quick Sort (%s Pivot)", a.Pivot)
	}
	return fmt.Sprintf("Algorithm(%d)", byte(a.Kind))
}

// Key is the selector string accepted by ParseAlgorithm.
func (a Algorithm) Key() string {
	key := kindKeys[a.Kind]
	switch a.Kind {
	case ShellSort:
		return key + ":" + strings.ToLower(a.Gap.String())
	case QuickSort:
		return key + ":" + strings.ToLower(a.Pivot.String())
	}
	return key
}

func (a Algorithm) String() string {
	return a.Name()
}

// Validate rejects unknown kinds and variants.
func (a Algorithm) Validate() error {
	if _, ok := kindKeys[a.Kind]; !ok {
		return fmt.Errorf("%w: kind %d", ErrUnknownAlgorithm, a.Kind)
	}
	if a.Kind == ShellSort && !a.Gap.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownVariant, a.Gap)
	}
	if a.Kind == QuickSort && !a.Pivot.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownVariant, a.Pivot)
	}
	return nil
}

// ParseAlgorithm reads selectors such as "heap", "shell:hibbard" or
// "quick:random". Shell defaults to Knuth gaps and Quick to the middle pivot.
func ParseAlgorithm(s string) (Algorithm, error) {
	name, variant, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")

	var alg Algorithm
	for kind, key := range kindKeys {
		if key == name {
			alg.Kind = kind
		}
	}

	switch alg.Kind {
	case 0:
		return alg, fmt.Errorf("%w %q%s", ErrUnknownAlgorithm, s, suggest(name, kindNames()))
	case InsertionSort, HeapSort:
		if variant != "" {
			return alg, fmt.Errorf("%w %q: %s takes no variant", ErrUnknownVariant, variant, name)
		}
	case ShellSort:
		alg.Gap = Knuth
		if variant != "" {
			gap, ok := gapKeys[variant]
			if !ok {
				return alg, fmt.Errorf("%w %q%s", ErrUnknownVariant, variant, suggest(variant, keys(gapKeys)))
			}
			alg.Gap = gap
		}
	case QuickSort:
		alg.Pivot = Middle
		if variant != "" {
			pivot, ok := pivotKeys[variant]
			if !ok {
				return alg, fmt.Errorf("%w %q%s", ErrUnknownVariant, variant, suggest(variant, keys(pivotKeys)))
			}
			alg.Pivot = pivot
		}
	}
	return alg, nil
}

// Sort runs the routine selected by alg on data.
func Sort[T Element](alg Algorithm, data []T, rng RandSource) {
	switch alg.Kind {
	case InsertionSort:
		Insertion(data)
	case HeapSort:
		Heap(data)
	case ShellSort:
		Shell(data, alg.Gap)
	case QuickSort:
		Quick(data, alg.Pivot, rng)
	}
}

// suggest returns a "did you mean" hint for the closest candidate, or an
// empty string when nothing is within two edits.
func suggest(input string, candidates []string) string {
	best, bestCost := "", 3
	for _, c := range candidates {
		if cost := smetrics.WagnerFischer(input, c, 1, 1, 1); cost < bestCost {
			best, bestCost = c, cost
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

func kindNames() []string {
	return []string{"insertion", "heap", "shell", "quick"}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
