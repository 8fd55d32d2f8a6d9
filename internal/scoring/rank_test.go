package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	t.Run("higher score ranks first", func(t *testing.T) {
		ranked := Rank([]RankEntry{
			{ID: 2, TotalScore: 65},
			{ID: 1, TotalScore: 82},
		})
		assert.Equal(t, int64(1), ranked[0].ID)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, int64(2), ranked[1].ID)
		assert.Equal(t, 2, ranked[1].Rank)
	})

	t.Run("ties go to the earliest submission", func(t *testing.T) {
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		ranked := Rank([]RankEntry{
			{ID: 1, TotalScore: 70, SubmittedAt: base.Add(time.Hour)},
			{ID: 2, TotalScore: 90, SubmittedAt: base.Add(2 * time.Hour)},
			{ID: 3, TotalScore: 70, SubmittedAt: base},
		})
		ids := []int64{ranked[0].ID, ranked[1].ID, ranked[2].ID}
		assert.Equal(t, []int64{2, 3, 1}, ids)
		assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
	})

	t.Run("identical timestamps fall back to id", func(t *testing.T) {
		ranked := Rank([]RankEntry{{ID: 9, TotalScore: 50}, {ID: 4, TotalScore: 50}})
		assert.Equal(t, int64(4), ranked[0].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Rank(nil))
	})
}
