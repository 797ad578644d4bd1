package sorter

import (
	"math/rand"
	"testing"
)

func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = 1 + rand.Intn(10000)
	}
	return data
}

func benchmarkAlgorithm(b *testing.B, alg Algorithm, n int) {
	ref := generateInts(n)
	data := make([]int, n)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(data, ref)
		Sort(alg, data, rng)
	}
}

func BenchmarkInsertion_1000(b *testing.B) {
	benchmarkAlgorithm(b, Algorithm{Kind: InsertionSort}, 1000)
}

func BenchmarkHeap_10000(b *testing.B) {
	benchmarkAlgorithm(b, Algorithm{Kind: HeapSort}, 10000)
}

func BenchmarkShellKnuth_10000(b *testing.B) {
	benchmarkAlgorithm(b, Algorithm{Kind: ShellSort, Gap: Knuth}, 10000)
}

func BenchmarkShellHibbard_10000(b *testing.B) {
	benchmarkAlgorithm(b, Algorithm{Kind: ShellSort, Gap: Hibbard}, 10000)
}

func BenchmarkQuickMiddle_10000(b *testing.B) {
	benchmarkAlgorithm(b, Algorithm{Kind: QuickSort, Pivot: Middle}, 10000)
}

func BenchmarkQuickRandom_10000(b *testing.B) {
	benchmarkAlgorithm(b, Algorithm{Kind: QuickSort, Pivot: Random}, 10000)
}
