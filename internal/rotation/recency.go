package rotation

import (
	"cmp"
	"slices"

	"github.com/ray8844/saida-de-campo/internal/model"
)

// ShuffleFunc has the shape of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// LastUsed returns, for every id referenced by history, the most recent
// service date it appears on.
//
// Parameters:
//   - history: assignments of one group, in any order
//   - key: extracts the id to rank (brother or territory)
//
// Returns:
//   - map[string]string: id to YYYY-MM-DD date of last use
func LastUsed(history []model.Assignment, key func(model.Assignment) string) map[string]string {
	last := make(map[string]string, len(history))
	for _, a := range history {
		id := key(a)
		// Dates are YYYY-MM-DD so string order is calendar order.
		if prev, ok := last[id]; !ok || a.ServiceDate > prev {
			last[id] = a.ServiceDate
		}
	}
	return last
}

// Order ranks ids for selection. Ids absent from lastUsed come first, then
// ids by ascending date of last use. Ids with the same rank are shuffled
// within their bucket; the relative order of buckets is never changed.
//
// Parameters:
//   - ids: candidate ids, unique
//   - lastUsed: output of LastUsed; entries for ids not in ids are ignored
//   - shuffle: tie-break source
//
// Returns:
//   - []string: a new slice in priority order
func Order(ids []string, lastUsed map[string]string, shuffle ShuffleFunc) []string {
	ordered := slices.Clone(ids)
	rank := func(id string) string { return lastUsed[id] } // "" sorts first

	slices.SortStableFunc(ordered, func(a, b string) int {
		return cmp.Compare(rank(a), rank(b))
	})

	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && rank(ordered[end]) == rank(ordered[start]) {
			end++
		}
		if bucket := ordered[start:end]; len(bucket) > 1 {
			shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
		}
		start = end
	}

	return ordered
}

// HistoryLimit returns how many recent assignments the recency window holds.
// A positive lookback wins; otherwise the window spans the larger roster so
// that every member can be seen at least once.
func HistoryLimit(lookback, brothers, territories int) int {
	if lookback > 0 {
		return lookback
	}
	return max(brothers, territories, 1)
}
