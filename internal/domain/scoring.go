package domain

import (
	"context"

	"hireranker-backend/internal/scoring"
)

// ScoringReport summarizes a batch scoring run over a ranking's pending applications.
type ScoringReport struct {
	Message           string   `json:"message"`
	ScoredCount       int      `json:"scoredCount"`
	TotalApplications int      `json:"totalApplications"`
	Errors            []string `json:"errors"`
}

// PreviewInput scores a submission without persisting anything.
type PreviewInput struct {
	Submission      scoring.Submission      `json:"submission"`
	CriteriaWeights scoring.CriteriaWeights `json:"criteria_weights"`
	AreaCity        string                  `json:"area_city"`
}

type ScoringUsecase interface {
	ScoreRanking(ctx context.Context, rankingID int64) (*ScoringReport, error)
	ScoreApplication(ctx context.Context, applicationID int64) (*Application, error)
	Preview(ctx context.Context, input PreviewInput) (*scoring.AggregateResult, error)
}
