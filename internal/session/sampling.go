package session

// SequentialIndices returns 0..n-1 capped at pool. n <= 0 means the whole pool.
func SequentialIndices(pool, n int) []int {
	n = clampCount(pool, n)
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// SampleIndices draws n distinct indices from [0,pool) by repeatedly taking a
// uniformly random element out of the shrinking candidate list.
func SampleIndices(pool, n int, intN func(int) int) []int {
	n = clampCount(pool, n)

	candidates := make([]int, pool)
	for i := range candidates {
		candidates[i] = i
	}

	out := make([]int, 0, n)
	for len(out) < n {
		pick := intN(len(candidates))
		out = append(out, candidates[pick])
		candidates = append(candidates[:pick], candidates[pick+1:]...)
	}
	return out
}

func clampCount(pool, n int) int {
	if n <= 0 || n > pool {
		return pool
	}
	return n
}
