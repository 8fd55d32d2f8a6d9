package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `
	a.id, a.ranking_id, a.applicant_name, a.applicant_email, a.applicant_phone, a.applicant_city,
	a.status, a.submitted_at, a.resume_summary, a.key_skills, a.experience_text, a.experience_years,
	a.education_level, a.certifications, a.ocr_transcript, a.scores, a.total_score, a.rank, a.scored_at,
	a.selected_for_interview, a.interview_notes, a.created_at, a.updated_at`

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (ranking_id, applicant_name, applicant_email, applicant_phone, applicant_city,
			status, submitted_at, resume_summary, key_skills, experience_text, experience_years,
			education_level, certifications, ocr_transcript, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = now
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.RankingID, app.ApplicantName, app.ApplicantEmail, app.ApplicantPhone, app.ApplicantCity,
		app.Status, app.SubmittedAt, app.ResumeSummary, app.KeySkills, app.ExperienceText, app.ExperienceYears,
		app.EducationLevel, app.Certifications, app.OCRTranscript, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	return mapError("create application", err)
}

// GetByID retrieves an application with its ranking title
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `, rk.title
		FROM applications a
		LEFT JOIN rankings rk ON a.ranking_id = rk.id
		WHERE a.id = $1`

	var app domain.Application
	var scores []byte
	dest := append(applicationDest(&app, &scores), &app.RankingTitle)
	if err := r.db.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		return nil, mapError("get application", err)
	}
	if err := decodeScores(scores, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByRanking returns a page of a ranking's applications, best ranked first.
func (r *applicationRepo) ListByRanking(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	where := []string{"a.ranking_id = $1"}
	args := []any{filter.RankingID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	whereSQL := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications a WHERE `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count applications", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM applications a WHERE %s
		ORDER BY a.rank ASC NULLS LAST, a.submitted_at ASC, a.id ASC
		LIMIT $%d OFFSET $%d`, applicationColumns, whereSQL, len(args)-1, len(args))

	apps, err := r.queryApplications(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// ListPending returns applications awaiting scoring, oldest first.
func (r *applicationRepo) ListPending(ctx context.Context, rankingID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a
		WHERE a.ranking_id = $1 AND a.status = $2
		ORDER BY a.submitted_at ASC, a.id ASC`
	return r.queryApplications(ctx, query, rankingID, domain.ApplicationStatusPending)
}

func (r *applicationRepo) ListRankable(ctx context.Context, rankingID int64) ([]scoring.RankEntry, error) {
	query := `SELECT id, total_score, submitted_at FROM applications
		WHERE ranking_id = $1 AND total_score IS NOT NULL`
	rows, err := r.db.Query(ctx, query, rankingID)
	if err != nil {
		return nil, mapError("list rankable applications", err)
	}
	defer rows.Close()

	entries := []scoring.RankEntry{}
	for rows.Next() {
		var e scoring.RankEntry
		if err := rows.Scan(&e.ID, &e.TotalScore, &e.SubmittedAt); err != nil {
			return nil, mapError("scan rank entry", err)
		}
		entries = append(entries, e)
	}
	return entries, mapError("list rankable applications", rows.Err())
}

// SaveScore stores the breakdown and moves a pending application to scored.
// Applications already past scoring keep their status.
func (r *applicationRepo) SaveScore(ctx context.Context, id int64, result scoring.AggregateResult, scoredAt time.Time) error {
	scores, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	query := `UPDATE applications SET
			scores = $2, total_score = $3, scored_at = $4, updated_at = $4,
			status = CASE WHEN status = $5 THEN $6 ELSE status END
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, scores, result.TotalScore, scoredAt,
		domain.ApplicationStatusPending, domain.ApplicationStatusScored)
	if err != nil {
		return mapError("save score", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateRanks writes all ranks in one transaction.
func (r *applicationRepo) UpdateRanks(ctx context.Context, entries []scoring.RankEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError("begin rank update", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`UPDATE applications SET rank = $2 WHERE id = $1`, e.ID, e.Rank)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapError("update ranks", err)
	}
	return mapError("commit rank update", tx.Commit(ctx))
}

// UpdateStatus sets the status, interview flag and optional notes.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string, notes *string) error {
	query := `UPDATE applications SET
			status = $2,
			selected_for_interview = selected_for_interview OR $2 = $3,
			interview_notes = COALESCE($4, interview_notes),
			updated_at = $5
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, domain.ApplicationStatusSelected, notes, time.Now())
	if err != nil {
		return mapError("update application status", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) queryApplications(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("query applications", err)
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		var scores []byte
		if err := rows.Scan(applicationDest(&app, &scores)...); err != nil {
			return nil, mapError("scan application", err)
		}
		if err := decodeScores(scores, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, mapError("query applications", rows.Err())
}

func applicationDest(app *domain.Application, scores *[]byte) []any {
	return []any{
		&app.ID, &app.RankingID, &app.ApplicantName, &app.ApplicantEmail, &app.ApplicantPhone, &app.ApplicantCity,
		&app.Status, &app.SubmittedAt, &app.ResumeSummary, &app.KeySkills, &app.ExperienceText, &app.ExperienceYears,
		&app.EducationLevel, &app.Certifications, &app.OCRTranscript, scores, &app.TotalScore, &app.Rank, &app.ScoredAt,
		&app.SelectedForInterview, &app.InterviewNotes, &app.CreatedAt, &app.UpdatedAt,
	}
}

func decodeScores(raw []byte, app *domain.Application) error {
	if len(raw) == 0 {
		return nil
	}
	var result scoring.AggregateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode scores for application %d: %w", app.ID, err)
	}
	app.Scores = &result
	return nil
}
