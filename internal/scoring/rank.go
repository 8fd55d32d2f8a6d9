package scoring

import (
	"sort"
	"time"
)

// RankEntry is one scored application within a posting.
type RankEntry struct {
	ID          int64
	TotalScore  int
	SubmittedAt time.Time
	Rank        int
}

// Rank orders entries by total score descending and assigns 1-based ranks.
// Ties go to the earliest submission, then to the lowest ID. The input slice
// is sorted in place and returned.
func Rank(entries []RankEntry) []RankEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.ID < b.ID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
