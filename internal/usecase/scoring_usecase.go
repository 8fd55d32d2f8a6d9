package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/pkg/apperror"
	"hireranker-backend/pkg/audit"
	"hireranker-backend/pkg/logger"
	"hireranker-backend/pkg/validation"
)

type scoringUsecase struct {
	rankingRepo     domain.RankingRepository
	applicationRepo domain.ApplicationRepository
	engine          *scoring.Engine
	audit           *audit.Logger
	now             func() time.Time
}

func NewScoringUsecase(
	rankingRepo domain.RankingRepository,
	applicationRepo domain.ApplicationRepository,
	engine *scoring.Engine,
	auditLog *audit.Logger,
) domain.ScoringUsecase {
	return &scoringUsecase{
		rankingRepo:     rankingRepo,
		applicationRepo: applicationRepo,
		engine:          engine,
		audit:           auditLog,
		now:             time.Now,
	}
}

// ScoreRanking scores every pending application of a ranking and re-ranks the
// ranking afterwards. Per-applicant problems are collected in the report
// instead of failing the batch.
func (uc *scoringUsecase) ScoreRanking(ctx context.Context, rankingID int64) (*domain.ScoringReport, error) {
	ranking, err := uc.rankingRepo.GetByID(ctx, rankingID)
	if err != nil {
		return nil, notFoundOr(err, "Ranking not found")
	}

	pending, err := uc.applicationRepo.ListPending(ctx, rankingID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	report := &domain.ScoringReport{
		TotalApplications: len(pending),
		Errors:            []string{},
	}
	if len(pending) == 0 {
		report.Message = "No pending applications to score"
		return report, nil
	}

	failed := 0
	for i := range pending {
		app := &pending[i]
		if err := ctx.Err(); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Scoring interrupted: %v", err))
			break
		}

		sub := app.Submission(ranking.Position)
		if !sub.HasResumeData() {
			report.Errors = append(report.Errors, fmt.Sprintf("Skipped %s: No resume data available", app.ApplicantName))
			uc.audit.LogScoringSkipped(ctx, app.ID, "no resume data")
			continue
		}

		result := uc.engine.ScoreApplication(sub, ranking.CriteriaWeights, scoring.WithAreaCity(ranking.AreaCityValue()))
		if err := uc.applicationRepo.SaveScore(ctx, app.ID, result, uc.now()); err != nil {
			failed++
			logger.Log.Error("Failed to save application score", "application_id", app.ID, "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to update %s: %v", app.ApplicantName, err))
			uc.audit.LogScoringFailed(ctx, app.ID, err)
			continue
		}

		report.ScoredCount++
		uc.audit.LogApplicationScored(ctx, app.ID, result.TotalScore)
	}

	if report.ScoredCount > 0 {
		if err := uc.rerank(ctx, rankingID); err != nil {
			logger.Log.Error("Failed to update ranks", "ranking_id", rankingID, "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to update ranks: %v", err))
		}
	}

	report.Message = fmt.Sprintf("Successfully scored %d out of %d applications", report.ScoredCount, len(pending))
	uc.audit.LogScoringBatchCompleted(ctx, rankingID, report.ScoredCount, len(pending), failed)
	return report, nil
}

// ScoreApplication (re)scores a single application regardless of its status.
func (uc *scoringUsecase) ScoreApplication(ctx context.Context, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	ranking, err := uc.rankingRepo.GetByID(ctx, app.RankingID)
	if err != nil {
		return nil, notFoundOr(err, "Ranking not found")
	}

	sub := app.Submission(ranking.Position)
	if !sub.HasResumeData() {
		uc.audit.LogScoringSkipped(ctx, app.ID, "no resume data")
		return nil, apperror.BadRequest("No resume data available")
	}

	result := uc.engine.ScoreApplication(sub, ranking.CriteriaWeights, scoring.WithAreaCity(ranking.AreaCityValue()))
	if err := uc.applicationRepo.SaveScore(ctx, app.ID, result, uc.now()); err != nil {
		uc.audit.LogScoringFailed(ctx, app.ID, err)
		return nil, notFoundOr(err, "Application not found")
	}
	uc.audit.LogApplicationScored(ctx, app.ID, result.TotalScore)

	if err := uc.rerank(ctx, ranking.ID); err != nil {
		return nil, apperror.Internal(err)
	}

	scored, err := uc.applicationRepo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	return scored, nil
}

// Preview scores a submission against ad-hoc weights without touching storage.
func (uc *scoringUsecase) Preview(ctx context.Context, input domain.PreviewInput) (*scoring.AggregateResult, error) {
	position := strings.ToLower(strings.TrimSpace(input.Submission.Position))
	catalog := uc.engine.Catalog()
	if !catalog.Has(position) {
		return nil, apperror.BadRequest("Invalid position. Must be one of: " + strings.Join(catalog.Positions(), ", "))
	}
	if err := input.CriteriaWeights.Validate(); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	sub := input.Submission
	sub.Position = position
	result := uc.engine.ScoreApplication(sub, input.CriteriaWeights, scoring.WithAreaCity(input.AreaCity))
	return &result, nil
}

func (uc *scoringUsecase) rerank(ctx context.Context, rankingID int64) error {
	entries, err := uc.applicationRepo.ListRankable(ctx, rankingID)
	if err != nil {
		return err
	}
	return uc.applicationRepo.UpdateRanks(ctx, scoring.Rank(entries))
}
