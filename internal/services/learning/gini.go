package learning

import "sort"

// Gini computes the Gini coefficient of a count distribution.
// 0 means perfect equality across buckets, values approaching 1 mean one
// bucket dominates. An empty or zero-sum distribution scores 0.
func Gini(counts map[string]int) float64 {
	if len(counts) == 0 {
		return 0
	}

	values := make([]int, 0, len(counts))
	total := 0
	for _, v := range counts {
		values = append(values, v)
		total += v
	}
	if total == 0 {
		return 0
	}
	sort.Ints(values)

	n := len(values)
	cumsum := 0
	for i, v := range values {
		cumsum += (2*(i+1) - n - 1) * v
	}
	return float64(cumsum) / float64(n*total)
}

// rarest returns the key with the smallest count
func rarest(counts map[string]int) string {
	best := ""
	bestCount := -1
	for k, v := range counts {
		if bestCount < 0 || v < bestCount || (v == bestCount && k < best) {
			best = k
			bestCount = v
		}
	}
	return best
}
