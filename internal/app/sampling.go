package app

import "math/rand"

// sampleIndices returns k distinct indices from [0, n) using a partial Fisher-Yates shuffle.
// Callers guarantee 0 <= k <= n.
func sampleIndices(rnd *rand.Rand, n, k int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rnd.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}

// sampleStrings picks k distinct elements of values without modifying it.
func sampleStrings(rnd *rand.Rand, values []string, k int) []string {
	idx := sampleIndices(rnd, len(values), k)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}

// insertAt returns a copy of values with v placed at position pos.
func insertAt(values []string, pos int, v string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, values[:pos]...)
	out = append(out, v)
	return append(out, values[pos:]...)
}
