// Package recommend turns raw similarity-search output into assignee
// suggestions. How similarity is computed is someone else's problem; this
// package only owns the dedup-and-cap policy.
package recommend

// DefaultLimit caps the suggestion shortlist.
const DefaultLimit = 3

// Rank deduplicates a similarity-ordered candidate list, best match first,
// keeping the first occurrence of each id, and stops after limit distinct
// ids. The output is a subsequence of the input, so a candidate's rank is
// decided by their best-matching occurrence.
//
// Deduplication happens before the limit is applied: a list with three
// distinct fixers always yields three suggestions, no matter how many
// duplicate rows precede them.
func Rank(rawIDs []int64, limit int) []int64 {
	if limit <= 0 {
		return []int64{}
	}
	seen := make(map[int64]struct{}, limit)
	ranked := make([]int64, 0, limit)
	for _, id := range rawIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ranked = append(ranked, id)
		if len(ranked) == limit {
			break
		}
	}
	return ranked
}
