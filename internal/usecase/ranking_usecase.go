package usecase

import (
	"context"
	"errors"
	"strings"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/pkg/apperror"
	"hireranker-backend/pkg/audit"
	"hireranker-backend/pkg/validation"

	"github.com/google/uuid"
)

type rankingUsecase struct {
	rankingRepo domain.RankingRepository
	catalog     *scoring.Catalog
	audit       *audit.Logger
}

func NewRankingUsecase(repo domain.RankingRepository, catalog *scoring.Catalog, auditLog *audit.Logger) domain.RankingUsecase {
	return &rankingUsecase{rankingRepo: repo, catalog: catalog, audit: auditLog}
}

// CreateRanking validates the position and weights and issues a public application link.
func (uc *rankingUsecase) CreateRanking(ctx context.Context, input domain.CreateRankingInput) (*domain.Ranking, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	position := strings.ToLower(strings.TrimSpace(input.Position))
	if !uc.catalog.Has(position) {
		return nil, apperror.BadRequest("Invalid position. Must be one of: " + strings.Join(uc.catalog.Positions(), ", "))
	}
	if err := input.CriteriaWeights.Validate(); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}
	enabled := input.CriteriaWeights.Enabled()
	if len(enabled) == 0 {
		return nil, apperror.BadRequest("At least one criterion must have a positive weight")
	}

	selected := make([]string, len(enabled))
	for i, c := range enabled {
		selected[i] = string(c)
	}

	ranking := &domain.Ranking{
		Title:                    title,
		Position:                 position,
		Description:              optional(input.Description),
		CriteriaWeights:          input.CriteriaWeights,
		SelectedCriteria:         selected,
		AreaCity:                 optional(input.AreaCity),
		IsActive:                 true,
		ApplicationLinkID:        "job-" + uuid.NewString(),
		ShowCriteriaToApplicants: true,
	}
	if input.ShowCriteriaToApplicants != nil {
		ranking.ShowCriteriaToApplicants = *input.ShowCriteriaToApplicants
	}

	if err := uc.rankingRepo.Create(ctx, ranking); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.audit.LogRankingCreated(ctx, ranking.ID, ranking.Position)
	return ranking, nil
}

func (uc *rankingUsecase) ListActiveRankings(ctx context.Context) ([]domain.Ranking, error) {
	rankings, err := uc.rankingRepo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rankings, nil
}

func (uc *rankingUsecase) GetRanking(ctx context.Context, id int64) (*domain.Ranking, error) {
	ranking, err := uc.rankingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Ranking not found")
	}
	return ranking, nil
}

// GetPublicRanking returns the applicant view of an active ranking. Criteria
// are only disclosed when the ranking allows it.
func (uc *rankingUsecase) GetPublicRanking(ctx context.Context, linkID string) (*domain.PublicRanking, error) {
	ranking, err := uc.rankingRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return nil, notFoundOr(err, "Job posting not found")
	}
	if !ranking.IsActive {
		return nil, apperror.NotFound("Job posting is no longer accepting applications")
	}

	public := &domain.PublicRanking{
		Title:             ranking.Title,
		Position:          ranking.Position,
		Description:       ranking.Description,
		AreaCity:          ranking.AreaCity,
		ApplicationLinkID: ranking.ApplicationLinkID,
	}
	if ranking.ShowCriteriaToApplicants {
		weights := ranking.CriteriaWeights
		public.CriteriaWeights = &weights
		public.SelectedCriteria = ranking.SelectedCriteria
	}
	return public, nil
}

func (uc *rankingUsecase) DeactivateRanking(ctx context.Context, id int64) error {
	if err := uc.rankingRepo.Deactivate(ctx, id); err != nil {
		return notFoundOr(err, "Ranking not found")
	}
	uc.audit.LogRankingDeactivated(ctx, id)
	return nil
}

// notFoundOr maps domain.ErrNotFound to a 404 and anything else to a 500.
func notFoundOr(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal(err)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
