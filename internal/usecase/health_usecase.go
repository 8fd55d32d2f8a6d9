package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db         Pinger
	redisCheck func(ctx context.Context) error
}

// NewHealthUsecase reports database and cache reachability. Either dependency
// may be nil when it is not configured.
func NewHealthUsecase(db Pinger, redisCheck func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{db: db, redisCheck: redisCheck}
}

// Check always returns a status map. Redis is optional, so a failing cache
// degrades the status without marking the service down.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok", "database": "disabled", "redis": "disabled"}

	if u.db != nil {
		if err := u.db.Ping(ctx); err != nil {
			result["database"] = "unreachable"
			result["status"] = "error"
		} else {
			result["database"] = "ok"
		}
	}

	if u.redisCheck != nil {
		if err := u.redisCheck(ctx); err != nil {
			result["redis"] = "unreachable"
			if result["status"] == "ok" {
				result["status"] = "degraded"
			}
		} else {
			result["redis"] = "ok"
		}
	}

	return result
}
