package usecase

import (
	"context"
	"strings"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/pkg/apperror"
)

type catalogUsecase struct {
	engine *scoring.Engine
}

func NewCatalogUsecase(engine *scoring.Engine) domain.CatalogUsecase {
	return &catalogUsecase{engine: engine}
}

func (uc *catalogUsecase) ListPositions(ctx context.Context) []domain.PositionSummary {
	positions := uc.engine.Catalog().Positions()
	out := make([]domain.PositionSummary, 0, len(positions))
	for _, p := range positions {
		out = append(out, domain.PositionSummary{Position: p, Multipliers: uc.multipliers(p)})
	}
	return out
}

func (uc *catalogUsecase) GetPosition(ctx context.Context, position string) (*domain.PositionDetail, error) {
	position = strings.ToLower(strings.TrimSpace(position))
	profile, ok := uc.engine.Catalog().Profile(position)
	if !ok {
		return nil, apperror.NotFound("Position not found")
	}
	return &domain.PositionDetail{
		Position:    position,
		Profile:     profile,
		Multipliers: uc.multipliers(position),
	}, nil
}

// multipliers falls back to neutral values for positions without a table.
func (uc *catalogUsecase) multipliers(position string) scoring.CategoryMultipliers {
	if m, ok := uc.engine.Multipliers(position); ok {
		return m
	}
	return scoring.CategoryMultipliers{Education: 1, Experience: 1, Skills: 1, Certifications: 1}
}
