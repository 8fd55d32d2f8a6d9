package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/internal/usecase"
	"hireranker-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRanking(t *testing.T) {
	ctx := context.Background()
	catalog := newTestEngine(t).Catalog()

	t.Run("Should normalize input and issue a link", func(t *testing.T) {
		repo := new(MockRankingRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Ranking")).Return(nil)

		uc := usecase.NewRankingUsecase(repo, catalog, audit.NewNop())
		hidden := false
		got, err := uc.CreateRanking(ctx, domain.CreateRankingInput{
			Title:                    " Weekend Barista ",
			Position:                 "Barista",
			CriteriaWeights:          scoring.CriteriaWeights{Skill: 60, Personality: 40},
			AreaCity:                 "  ",
			ShowCriteriaToApplicants: &hidden,
		})
		require.NoError(t, err)

		assert.Equal(t, "Weekend Barista", got.Title)
		assert.Equal(t, "barista", got.Position)
		assert.True(t, strings.HasPrefix(got.ApplicationLinkID, "job-"))
		assert.True(t, got.IsActive)
		assert.False(t, got.ShowCriteriaToApplicants)
		assert.Nil(t, got.AreaCity)
		assert.Equal(t, []string{"skill", "personality"}, got.SelectedCriteria)
	})

	invalid := []struct {
		name  string
		input domain.CreateRankingInput
	}{
		{"unknown position", domain.CreateRankingInput{Title: "Pilot", Position: "pilot", CriteriaWeights: scoring.CriteriaWeights{Skill: 10}}},
		{"weight above range", domain.CreateRankingInput{Title: "Barista", Position: "barista", CriteriaWeights: scoring.CriteriaWeights{Skill: 101}}},
		{"no enabled criteria", domain.CreateRankingInput{Title: "Barista", Position: "barista"}},
		{"blank title", domain.CreateRankingInput{Title: "  ", Position: "barista", CriteriaWeights: scoring.CriteriaWeights{Skill: 10}}},
	}
	for _, tc := range invalid {
		t.Run("Should reject "+tc.name, func(t *testing.T) {
			repo := new(MockRankingRepo)
			uc := usecase.NewRankingUsecase(repo, catalog, audit.NewNop())
			_, err := uc.CreateRanking(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, appCode(t, err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetPublicRanking(t *testing.T) {
	ctx := context.Background()
	catalog := newTestEngine(t).Catalog()

	t.Run("Should hide criteria when disabled", func(t *testing.T) {
		ranking := baristaRanking()
		ranking.ApplicationLinkID = "job-1"
		ranking.SelectedCriteria = []string{"skill"}
		repo := new(MockRankingRepo)
		repo.On("GetByLinkID", ctx, "job-1").Return(ranking, nil)

		uc := usecase.NewRankingUsecase(repo, catalog, audit.NewNop())
		got, err := uc.GetPublicRanking(ctx, "job-1")
		require.NoError(t, err)
		assert.Nil(t, got.CriteriaWeights)
		assert.Nil(t, got.SelectedCriteria)
	})

	t.Run("Should show criteria when enabled", func(t *testing.T) {
		ranking := baristaRanking()
		ranking.ShowCriteriaToApplicants = true
		repo := new(MockRankingRepo)
		repo.On("GetByLinkID", ctx, "job-1").Return(ranking, nil)

		uc := usecase.NewRankingUsecase(repo, catalog, audit.NewNop())
		got, err := uc.GetPublicRanking(ctx, "job-1")
		require.NoError(t, err)
		require.NotNil(t, got.CriteriaWeights)
		assert.Equal(t, 40.0, got.CriteriaWeights.Skill)
	})

	t.Run("Should treat inactive postings as not found", func(t *testing.T) {
		ranking := baristaRanking()
		ranking.IsActive = false
		repo := new(MockRankingRepo)
		repo.On("GetByLinkID", ctx, "job-1").Return(ranking, nil)

		uc := usecase.NewRankingUsecase(repo, catalog, audit.NewNop())
		_, err := uc.GetPublicRanking(ctx, "job-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})
}

func TestDeactivateRanking_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRankingRepo)
	repo.On("Deactivate", ctx, int64(3)).Return(domain.ErrNotFound)

	uc := usecase.NewRankingUsecase(repo, newTestEngine(t).Catalog(), audit.NewNop())
	err := uc.DeactivateRanking(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}
