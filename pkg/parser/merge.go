package parser

import "sort"

// MergeChronological combines per-file reflection batches into a single list
// ordered by timestamp (oldest first). The sort is stable: reflections with
// equal timestamps keep the order of the batches and their order within each
// batch.
func MergeChronological(batches ...[]Reflection) []Reflection {
	var total int
	for _, b := range batches {
		total += len(b)
	}

	merged := make([]Reflection, 0, total)
	for _, b := range batches {
		merged = append(merged, b...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})
	return merged
}
