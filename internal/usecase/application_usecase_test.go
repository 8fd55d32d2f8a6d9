package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/usecase"
	"hireranker-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func submitInput() domain.SubmitApplicationInput {
	return domain.SubmitApplicationInput{
		ApplicantName:   "  Alice Doe ",
		ApplicantEmail:  "Alice@Example.com",
		ApplicantCity:   "Bandung",
		ResumeSummary:   "Friendly barista",
		KeySkills:       "latte art, espresso machine",
		ExperienceYears: 2,
	}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should persist as pending and score immediately", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		apps := new(MockApplicationRepo)
		scorer := new(MockScoringUsecase)

		rankings.On("GetByLinkID", ctx, "job-abc").Return(baristaRanking(), nil)
		apps.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.RankingID == 7 &&
				a.ApplicantName == "Alice Doe" &&
				a.ApplicantEmail == "alice@example.com" &&
				a.Status == domain.ApplicationStatusPending &&
				a.ApplicantPhone == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = 42
		}).Return(nil)
		scored := &domain.Application{ID: 42, Status: domain.ApplicationStatusScored, TotalScore: intPtr(77)}
		scorer.On("ScoreApplication", ctx, int64(42)).Return(scored, nil)

		uc := usecase.NewApplicationUsecase(apps, rankings, scorer, audit.NewNop())
		got, err := uc.SubmitApplication(ctx, "job-abc", submitInput())
		require.NoError(t, err)
		assert.Equal(t, 77, *got.TotalScore)
		scorer.AssertExpectations(t)
	})

	t.Run("Should keep the application pending when scoring fails", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		apps := new(MockApplicationRepo)
		scorer := new(MockScoringUsecase)

		rankings.On("GetByLinkID", ctx, "job-abc").Return(baristaRanking(), nil)
		apps.On("Create", ctx, mock.Anything).Return(nil)
		scorer.On("ScoreApplication", ctx, mock.Anything).Return(nil, errors.New("boom"))

		uc := usecase.NewApplicationUsecase(apps, rankings, scorer, audit.NewNop())
		got, err := uc.SubmitApplication(ctx, "job-abc", submitInput())
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, got.Status)
	})

	t.Run("Should not score without resume data", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		apps := new(MockApplicationRepo)
		scorer := new(MockScoringUsecase)

		rankings.On("GetByLinkID", ctx, "job-abc").Return(baristaRanking(), nil)
		apps.On("Create", ctx, mock.Anything).Return(nil)

		input := submitInput()
		input.KeySkills = ""
		uc := usecase.NewApplicationUsecase(apps, rankings, scorer, audit.NewNop())
		_, err := uc.SubmitApplication(ctx, "job-abc", input)
		require.NoError(t, err)
		scorer.AssertNotCalled(t, "ScoreApplication", mock.Anything, mock.Anything)
	})

	t.Run("Should reject inactive postings", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		closed := baristaRanking()
		closed.IsActive = false
		rankings.On("GetByLinkID", ctx, "job-abc").Return(closed, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), rankings, new(MockScoringUsecase), audit.NewNop())
		_, err := uc.SubmitApplication(ctx, "job-abc", submitInput())
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("Should return 404 for unknown links", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		rankings.On("GetByLinkID", ctx, "job-missing").Return(nil, fmt.Errorf("get ranking by link: %w", domain.ErrNotFound))

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), rankings, new(MockScoringUsecase), audit.NewNop())
		_, err := uc.SubmitApplication(ctx, "job-missing", submitInput())
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})

	t.Run("Should map duplicate applications to conflict", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		apps := new(MockApplicationRepo)
		rankings.On("GetByLinkID", ctx, "job-abc").Return(baristaRanking(), nil)
		apps.On("Create", ctx, mock.Anything).Return(fmt.Errorf("create application: %w", domain.ErrDuplicate))

		uc := usecase.NewApplicationUsecase(apps, rankings, new(MockScoringUsecase), audit.NewNop())
		_, err := uc.SubmitApplication(ctx, "job-abc", submitInput())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
	})

	t.Run("Should require a name", func(t *testing.T) {
		rankings := new(MockRankingRepo)
		rankings.On("GetByLinkID", ctx, "job-abc").Return(baristaRanking(), nil)

		input := submitInput()
		input.ApplicantName = "   "
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), rankings, new(MockScoringUsecase), audit.NewNop())
		_, err := uc.SubmitApplication(ctx, "job-abc", input)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})
}

func TestListByRanking_Pagination(t *testing.T) {
	ctx := context.Background()
	rankings := new(MockRankingRepo)
	apps := new(MockApplicationRepo)
	rankings.On("GetByID", ctx, int64(7)).Return(baristaRanking(), nil)
	apps.On("ListByRanking", ctx, domain.ApplicationFilter{RankingID: 7, Page: 1, PageSize: 100}).
		Return([]domain.Application{{ID: 1}, {ID: 2}}, int64(205), nil)

	uc := usecase.NewApplicationUsecase(apps, rankings, new(MockScoringUsecase), audit.NewNop())
	page, err := uc.ListByRanking(ctx, domain.ApplicationFilter{RankingID: 7, Page: 0, PageSize: 500})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 2)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"scored to selected", domain.ApplicationStatusScored, domain.ApplicationStatusSelected, true},
		{"selected to approved", domain.ApplicationStatusSelected, domain.ApplicationStatusApproved, true},
		{"pending to rejected", domain.ApplicationStatusPending, domain.ApplicationStatusRejected, true},
		{"approved to rejected", domain.ApplicationStatusApproved, domain.ApplicationStatusRejected, false},
		{"selected to pending", domain.ApplicationStatusSelected, domain.ApplicationStatusPending, false},
		{"pending to scored", domain.ApplicationStatusPending, domain.ApplicationStatusScored, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apps := new(MockApplicationRepo)
			current := &domain.Application{ID: 5, Status: tc.from}
			apps.On("GetByID", ctx, int64(5)).Return(current, nil).Once()

			if tc.ok {
				updated := &domain.Application{ID: 5, Status: tc.to, InterviewNotes: strPtr("call Monday")}
				apps.On("UpdateStatus", ctx, int64(5), tc.to, strPtr("call Monday")).Return(nil)
				apps.On("GetByID", ctx, int64(5)).Return(updated, nil).Once()
			}

			uc := usecase.NewApplicationUsecase(apps, new(MockRankingRepo), new(MockScoringUsecase), audit.NewNop())
			got, err := uc.UpdateStatus(ctx, 5, tc.to, " call Monday ")
			if !tc.ok {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, appCode(t, err))
				apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, got.Status)
			apps.AssertExpectations(t)
		})
	}
}
