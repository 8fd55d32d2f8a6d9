package domain

import (
	"context"

	"hireranker-backend/internal/scoring"
)

// PositionSummary is a catalog entry in list responses.
type PositionSummary struct {
	Position    string                      `json:"position"`
	Multipliers scoring.CategoryMultipliers `json:"multipliers"`
}

// PositionDetail is a position's full reference profile.
type PositionDetail struct {
	Position    string                      `json:"position"`
	Profile     scoring.PositionProfile     `json:"profile"`
	Multipliers scoring.CategoryMultipliers `json:"multipliers"`
}

type CatalogUsecase interface {
	ListPositions(ctx context.Context) []PositionSummary
	GetPosition(ctx context.Context, position string) (*PositionDetail, error)
}
