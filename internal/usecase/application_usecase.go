package usecase

import (
	"context"
	"errors"
	"strings"

	"hireranker-backend/internal/domain"
	"hireranker-backend/pkg/apperror"
	"hireranker-backend/pkg/audit"
	"hireranker-backend/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	rankingRepo     domain.RankingRepository
	scoring         domain.ScoringUsecase
	audit           *audit.Logger
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	rankingRepo domain.RankingRepository,
	scoringUC domain.ScoringUsecase,
	auditLog *audit.Logger,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		rankingRepo:     rankingRepo,
		scoring:         scoringUC,
		audit:           auditLog,
	}
}

// SubmitApplication stores an applicant's submission for the ranking behind
// linkID and scores it right away. A scoring failure leaves the application
// pending for the next batch run.
func (uc *applicationUsecase) SubmitApplication(ctx context.Context, linkID string, input domain.SubmitApplicationInput) (*domain.Application, error) {
	// 1. Resolve the posting
	ranking, err := uc.rankingRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return nil, notFoundOr(err, "Job posting not found")
	}
	if !ranking.IsActive {
		return nil, apperror.BadRequest("This job posting is no longer accepting applications")
	}

	// 2. Basic identity checks beyond struct binding
	name := strings.TrimSpace(input.ApplicantName)
	if name == "" {
		return nil, apperror.BadRequest("Name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.ApplicantEmail))
	if email == "" {
		return nil, apperror.BadRequest("Email is required")
	}

	// 3. Persist
	app := &domain.Application{
		RankingID:       ranking.ID,
		ApplicantName:   name,
		ApplicantEmail:  email,
		ApplicantPhone:  optional(input.ApplicantPhone),
		ApplicantCity:   optional(input.ApplicantCity),
		Status:          domain.ApplicationStatusPending,
		ResumeSummary:   optional(input.ResumeSummary),
		KeySkills:       optional(input.KeySkills),
		ExperienceText:  optional(input.ExperienceText),
		ExperienceYears: input.ExperienceYears,
		EducationLevel:  optional(input.EducationLevel),
		Certifications:  optional(input.Certifications),
		OCRTranscript:   optional(input.OCRTranscript),
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this position")
		}
		return nil, apperror.Internal(err)
	}
	uc.audit.LogApplicationSubmitted(ctx, ranking.ID, email)

	// 4. Score immediately when the resume carries enough text
	if !app.Submission(ranking.Position).HasResumeData() {
		return app, nil
	}
	scored, err := uc.scoring.ScoreApplication(ctx, app.ID)
	if err != nil {
		logger.Log.Warn("Automatic scoring failed, application left pending",
			"application_id", app.ID, "ranking_id", ranking.ID, "error", err)
		return app, nil
	}
	return scored, nil
}

func (uc *applicationUsecase) ListByRanking(ctx context.Context, filter domain.ApplicationFilter) (*domain.PaginatedResult[domain.Application], error) {
	if _, err := uc.rankingRepo.GetByID(ctx, filter.RankingID); err != nil {
		return nil, notFoundOr(err, "Ranking not found")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	apps, total, err := uc.applicationRepo.ListByRanking(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(apps, total, filter.Page, filter.PageSize), nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	return app, nil
}

// UpdateStatus moves an application through the review workflow
// (selected for interview, approved, rejected).
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, id int64, status string, notes string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	if !domain.CanTransition(app.Status, status) {
		return nil, apperror.BadRequest("Cannot change status from " + app.Status + " to " + status)
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, id, status, optional(notes)); err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	uc.audit.LogStatusChanged(ctx, id, app.Status, status)

	updated, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	return updated, nil
}
