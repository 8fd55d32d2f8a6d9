package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hireranker-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type rankingRepo struct {
	db *pgxpool.Pool
}

func NewRankingRepository(db *pgxpool.Pool) domain.RankingRepository {
	return &rankingRepo{db: db}
}

const rankingColumns = `r.id, r.title, r.position, r.description, r.criteria_weights, r.selected_criteria,
	r.area_city, r.is_active, r.application_link_id, r.show_criteria_to_applicants, r.created_at, r.updated_at`

func (r *rankingRepo) Create(ctx context.Context, ranking *domain.Ranking) error {
	weights, err := json.Marshal(ranking.CriteriaWeights)
	if err != nil {
		return fmt.Errorf("encode criteria weights: %w", err)
	}

	now := time.Now()
	ranking.CreatedAt = now
	ranking.UpdatedAt = now

	query := `INSERT INTO rankings (title, position, description, criteria_weights, selected_criteria, area_city,
              is_active, application_link_id, show_criteria_to_applicants, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = r.db.QueryRow(ctx, query,
		ranking.Title, ranking.Position, ranking.Description, weights, pq.Array(ranking.SelectedCriteria),
		ranking.AreaCity, ranking.IsActive, ranking.ApplicationLinkID, ranking.ShowCriteriaToApplicants,
		ranking.CreatedAt, ranking.UpdatedAt,
	).Scan(&ranking.ID)
	return mapError("create ranking", err)
}

func (r *rankingRepo) GetByID(ctx context.Context, id int64) (*domain.Ranking, error) {
	query := `SELECT ` + rankingColumns + ` FROM rankings r WHERE r.id = $1`
	ranking, err := scanRanking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get ranking", err)
	}
	return ranking, nil
}

func (r *rankingRepo) GetByLinkID(ctx context.Context, linkID string) (*domain.Ranking, error) {
	query := `SELECT ` + rankingColumns + ` FROM rankings r WHERE r.application_link_id = $1`
	ranking, err := scanRanking(r.db.QueryRow(ctx, query, linkID))
	if err != nil {
		return nil, mapError("get ranking by link", err)
	}
	return ranking, nil
}

// ListActive returns active rankings, newest first, with application counts.
func (r *rankingRepo) ListActive(ctx context.Context) ([]domain.Ranking, error) {
	query := `
		SELECT ` + rankingColumns + `,
			COUNT(a.id) AS application_count,
			COUNT(a.id) FILTER (WHERE a.total_score IS NOT NULL) AS scored_count
		FROM rankings r
		LEFT JOIN applications a ON a.ranking_id = r.id
		WHERE r.is_active = TRUE
		GROUP BY r.id
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list rankings", err)
	}
	defer rows.Close()

	rankings := []domain.Ranking{}
	for rows.Next() {
		var (
			rk      domain.Ranking
			weights []byte
		)
		if err := rows.Scan(
			&rk.ID, &rk.Title, &rk.Position, &rk.Description, &weights, pq.Array(&rk.SelectedCriteria),
			&rk.AreaCity, &rk.IsActive, &rk.ApplicationLinkID, &rk.ShowCriteriaToApplicants, &rk.CreatedAt, &rk.UpdatedAt,
			&rk.ApplicationCount, &rk.ScoredCount,
		); err != nil {
			return nil, mapError("scan ranking", err)
		}
		if err := decodeWeights(weights, &rk); err != nil {
			return nil, err
		}
		rankings = append(rankings, rk)
	}
	return rankings, mapError("list rankings", rows.Err())
}

func (r *rankingRepo) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE rankings SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return mapError("deactivate ranking", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRanking(row rowScanner) (*domain.Ranking, error) {
	var (
		rk      domain.Ranking
		weights []byte
	)
	if err := row.Scan(
		&rk.ID, &rk.Title, &rk.Position, &rk.Description, &weights, pq.Array(&rk.SelectedCriteria),
		&rk.AreaCity, &rk.IsActive, &rk.ApplicationLinkID, &rk.ShowCriteriaToApplicants, &rk.CreatedAt, &rk.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeWeights(weights, &rk); err != nil {
		return nil, err
	}
	return &rk, nil
}

func decodeWeights(raw []byte, rk *domain.Ranking) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &rk.CriteriaWeights); err != nil {
		return fmt.Errorf("decode criteria weights for ranking %d: %w", rk.ID, err)
	}
	return nil
}
