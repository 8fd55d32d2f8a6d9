package usecase_test

import (
	"context"
	"time"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockRankingRepo struct {
	mock.Mock
}

func (m *MockRankingRepo) Create(ctx context.Context, ranking *domain.Ranking) error {
	return m.Called(ctx, ranking).Error(0)
}

func (m *MockRankingRepo) GetByID(ctx context.Context, id int64) (*domain.Ranking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}

func (m *MockRankingRepo) GetByLinkID(ctx context.Context, linkID string) (*domain.Ranking, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}

func (m *MockRankingRepo) ListActive(ctx context.Context) ([]domain.Ranking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ranking), args.Error(1)
}

func (m *MockRankingRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListByRanking(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepo) ListPending(ctx context.Context, rankingID int64) ([]domain.Application, error) {
	args := m.Called(ctx, rankingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListRankable(ctx context.Context, rankingID int64) ([]scoring.RankEntry, error) {
	args := m.Called(ctx, rankingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.RankEntry), args.Error(1)
}

func (m *MockApplicationRepo) SaveScore(ctx context.Context, id int64, result scoring.AggregateResult, scoredAt time.Time) error {
	return m.Called(ctx, id, result, scoredAt).Error(0)
}

func (m *MockApplicationRepo) UpdateRanks(ctx context.Context, entries []scoring.RankEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string, notes *string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

type MockScoringUsecase struct {
	mock.Mock
}

func (m *MockScoringUsecase) ScoreRanking(ctx context.Context, rankingID int64) (*domain.ScoringReport, error) {
	args := m.Called(ctx, rankingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoringReport), args.Error(1)
}

func (m *MockScoringUsecase) ScoreApplication(ctx context.Context, applicationID int64) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockScoringUsecase) Preview(ctx context.Context, input domain.PreviewInput) (*scoring.AggregateResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.AggregateResult), args.Error(1)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
