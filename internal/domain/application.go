package domain

import (
	"context"
	"time"

	"hireranker-backend/internal/scoring"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusScored   = "scored"
	ApplicationStatusSelected = "selected"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// applicationTransitions lists the statuses reachable from each status.
// pending → scored happens only through scoring.
var applicationTransitions = map[string][]string{
	ApplicationStatusPending:  {ApplicationStatusSelected, ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusScored:   {ApplicationStatusSelected, ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusSelected: {ApplicationStatusApproved, ApplicationStatusRejected},
}

// CanTransition reports whether an application may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Application is one applicant's submission to a ranking, with its scoring outcome.
type Application struct {
	ID             int64     `json:"id"`
	RankingID      int64     `json:"ranking_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	ApplicantPhone *string   `json:"applicant_phone,omitempty"`
	ApplicantCity  *string   `json:"applicant_city,omitempty"`
	Status         string    `json:"status"` // pending → scored → selected / approved / rejected
	SubmittedAt    time.Time `json:"submitted_at"`

	// Resume-derived text, extracted before submission
	ResumeSummary   *string `json:"resume_summary,omitempty"`
	KeySkills       *string `json:"key_skills,omitempty"`
	ExperienceText  *string `json:"experience_text,omitempty"`
	ExperienceYears float64 `json:"experience_years"`
	EducationLevel  *string `json:"education_level,omitempty"`
	Certifications  *string `json:"certifications,omitempty"`
	OCRTranscript   *string `json:"ocr_transcript,omitempty"`

	Scores               *scoring.AggregateResult `json:"scores,omitempty"`
	TotalScore           *int                     `json:"total_score,omitempty"`
	Rank                 *int                     `json:"rank,omitempty"`
	ScoredAt             *time.Time               `json:"scored_at,omitempty"`
	SelectedForInterview bool                     `json:"selected_for_interview"`
	InterviewNotes       *string                  `json:"interview_notes,omitempty"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`

	// Joined data for detail responses
	RankingTitle *string `json:"ranking_title,omitempty"`
}

// Submission converts the application's resume text into scoring input.
func (a *Application) Submission(position string) scoring.Submission {
	return scoring.Submission{
		ID:              a.ID,
		Name:            a.ApplicantName,
		Position:        position,
		ResumeSummary:   deref(a.ResumeSummary),
		KeySkills:       deref(a.KeySkills),
		ExperienceText:  deref(a.ExperienceText),
		ExperienceYears: a.ExperienceYears,
		EducationLevel:  deref(a.EducationLevel),
		Certifications:  deref(a.Certifications),
		OCRTranscript:   deref(a.OCRTranscript),
		City:            deref(a.ApplicantCity),
		SubmittedAt:     a.SubmittedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SubmitApplicationInput is the applicant payload for a ranking's application link.
type SubmitApplicationInput struct {
	ApplicantName   string  `json:"applicant_name" binding:"required,min=2,max=120,valid_name"`
	ApplicantEmail  string  `json:"applicant_email" binding:"required,email"`
	ApplicantPhone  string  `json:"applicant_phone" binding:"omitempty,valid_phone"`
	ApplicantCity   string  `json:"applicant_city" binding:"max=120"`
	ResumeSummary   string  `json:"resume_summary" binding:"max=20000"`
	KeySkills       string  `json:"key_skills" binding:"max=5000"`
	ExperienceText  string  `json:"experience_text" binding:"max=20000"`
	ExperienceYears float64 `json:"experience_years" binding:"gte=0,lte=60"`
	EducationLevel  string  `json:"education_level" binding:"max=500"`
	Certifications  string  `json:"certifications" binding:"max=5000"`
	OCRTranscript   string  `json:"ocr_transcript" binding:"max=100000"`
}

// ApplicationFilter narrows a ranking's application list.
type ApplicationFilter struct {
	RankingID int64  `form:"-"`
	Status    string `form:"status" binding:"omitempty,oneof=pending scored selected approved rejected"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	// ListByRanking orders by rank, then submission time.
	ListByRanking(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)
	ListPending(ctx context.Context, rankingID int64) ([]Application, error)
	// ListRankable returns the scored applications of a ranking.
	ListRankable(ctx context.Context, rankingID int64) ([]scoring.RankEntry, error)
	SaveScore(ctx context.Context, id int64, result scoring.AggregateResult, scoredAt time.Time) error
	UpdateRanks(ctx context.Context, entries []scoring.RankEntry) error
	UpdateStatus(ctx context.Context, id int64, status string, notes *string) error
}

type ApplicationUsecase interface {
	SubmitApplication(ctx context.Context, linkID string, input SubmitApplicationInput) (*Application, error)
	ListByRanking(ctx context.Context, filter ApplicationFilter) (*PaginatedResult[Application], error)
	GetApplication(ctx context.Context, id int64) (*Application, error)
	UpdateStatus(ctx context.Context, id int64, status string, notes string) (*Application, error)
}
