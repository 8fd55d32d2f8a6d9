package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hireranker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogUsecase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUsecase(newTestEngine(t))

	positions := uc.ListPositions(ctx)
	require.Len(t, positions, 7)
	for _, p := range positions {
		if p.Position == "barista" {
			assert.Equal(t, 1.3, p.Multipliers.Skills)
		}
	}

	detail, err := uc.GetPosition(ctx, " Barista ")
	require.NoError(t, err)
	assert.Equal(t, "barista", detail.Position)
	assert.Contains(t, detail.Profile.Skills.Required, "latte art")

	_, err = uc.GetPosition(ctx, "pilot")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error { return p.err }

func TestHealthUsecase(t *testing.T) {
	ctx := context.Background()

	ok := usecase.NewHealthUsecase(pinger{}, func(context.Context) error { return nil }).Check(ctx)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "ok"}, ok)

	degraded := usecase.NewHealthUsecase(pinger{}, func(context.Context) error { return errors.New("down") }).Check(ctx)
	assert.Equal(t, "degraded", degraded["status"])

	down := usecase.NewHealthUsecase(pinger{err: errors.New("down")}, nil).Check(ctx)
	assert.Equal(t, "error", down["status"])
	assert.Equal(t, "disabled", down["redis"])
}
