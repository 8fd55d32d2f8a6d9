package domain

import (
	"context"
	"time"

	"hireranker-backend/internal/scoring"
)

// Ranking is a job posting whose applicants are scored and ranked together.
type Ranking struct {
	ID                       int64                   `json:"id"`
	Title                    string                  `json:"title"`
	Position                 string                  `json:"position"`
	Description              *string                 `json:"description,omitempty"`
	CriteriaWeights          scoring.CriteriaWeights `json:"criteria_weights"`
	SelectedCriteria         []string                `json:"selected_criteria"`
	AreaCity                 *string                 `json:"area_city,omitempty"`
	IsActive                 bool                    `json:"is_active"`
	ApplicationLinkID        string                  `json:"application_link_id"`
	ShowCriteriaToApplicants bool                    `json:"show_criteria_to_applicants"`
	CreatedAt                time.Time               `json:"created_at"`
	UpdatedAt                time.Time               `json:"updated_at"`

	// Joined data for list responses
	ApplicationCount int `json:"application_count"`
	ScoredCount      int `json:"scored_count"`
}

// AreaCityValue returns the posting city or an empty string.
func (r *Ranking) AreaCityValue() string {
	if r.AreaCity == nil {
		return ""
	}
	return *r.AreaCity
}

// PublicRanking is what applicants see through the application link.
type PublicRanking struct {
	Title             string                   `json:"title"`
	Position          string                   `json:"position"`
	Description       *string                  `json:"description,omitempty"`
	AreaCity          *string                  `json:"area_city,omitempty"`
	ApplicationLinkID string                   `json:"application_link_id"`
	CriteriaWeights   *scoring.CriteriaWeights `json:"criteria_weights,omitempty"`
	SelectedCriteria  []string                 `json:"selected_criteria,omitempty"`
}

// CreateRankingInput is the payload for creating a ranking
type CreateRankingInput struct {
	Title                    string                  `json:"title" binding:"required,min=3,max=200,no_emoji"`
	Position                 string                  `json:"position" binding:"required,position"`
	Description              string                  `json:"description" binding:"max=5000"`
	CriteriaWeights          scoring.CriteriaWeights `json:"criteria_weights"`
	AreaCity                 string                  `json:"area_city" binding:"max=120"`
	ShowCriteriaToApplicants *bool                   `json:"show_criteria_to_applicants"`
}

type RankingRepository interface {
	Create(ctx context.Context, ranking *Ranking) error
	GetByID(ctx context.Context, id int64) (*Ranking, error)
	GetByLinkID(ctx context.Context, linkID string) (*Ranking, error)
	ListActive(ctx context.Context) ([]Ranking, error)
	Deactivate(ctx context.Context, id int64) error
}

type RankingUsecase interface {
	CreateRanking(ctx context.Context, input CreateRankingInput) (*Ranking, error)
	ListActiveRankings(ctx context.Context) ([]Ranking, error)
	GetRanking(ctx context.Context, id int64) (*Ranking, error)
	GetPublicRanking(ctx context.Context, linkID string) (*PublicRanking, error)
	DeactivateRanking(ctx context.Context, id int64) error
}
