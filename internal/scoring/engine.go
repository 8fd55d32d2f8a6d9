package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config tunes the engine. Zero values are replaced by defaults in NewEngine.
type Config struct {
	SimilarityThreshold float64 `validate:"gt=0,lte=1"`
	ApplyMultipliers    bool
	Weights             ScoringWeights
	Multipliers         map[string]CategoryMultipliers `validate:"dive"`
}

// DefaultConfig uses the 0.7 threshold, multipliers on, and the built-in level tables.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		ApplyMultipliers:    true,
		Weights:             DefaultScoringWeights(),
		Multipliers:         DefaultMultipliers(),
	}
}

// Submission is the resume-derived text of one application.
type Submission struct {
	ID              int64     `json:"id,omitempty"`
	Name            string    `json:"name,omitempty"`
	Position        string    `json:"position"`
	ResumeSummary   string    `json:"resume_summary"`
	KeySkills       string    `json:"key_skills"`
	ExperienceText  string    `json:"experience_text"`
	ExperienceYears float64   `json:"experience_years"`
	EducationLevel  string    `json:"education_level"`
	Certifications  string    `json:"certifications"`
	OCRTranscript   string    `json:"ocr_transcript"`
	City            string    `json:"city"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// HasResumeData reports whether the submission carries enough text to be scored.
func (s Submission) HasResumeData() bool {
	return s.ResumeSummary != "" && s.KeySkills != ""
}

// CriterionScore is the breakdown for a single criterion.
type CriterionScore struct {
	Score     int      `json:"score"`
	Matched   []string `json:"matched"`
	Reasoning string   `json:"reasoning,omitempty"`
}

// AggregateResult is the outcome of scoring one submission.
type AggregateResult struct {
	Position       string                       `json:"position"`
	CriteriaScores map[Criterion]int            `json:"criteria_scores"`
	Breakdown      map[Criterion]CriterionScore `json:"breakdown"`
	TotalScore     int                          `json:"total_score"`
}

// CriteriaWeights holds the weight of each criterion. Zero disables a criterion.
type CriteriaWeights struct {
	Skill         float64 `json:"skill" yaml:"skill" validate:"gte=0,lte=100"`
	Experience    float64 `json:"experience" yaml:"experience" validate:"gte=0,lte=100"`
	Education     float64 `json:"education" yaml:"education" validate:"gte=0,lte=100"`
	Certification float64 `json:"certification" yaml:"certification" validate:"gte=0,lte=100"`
	Training      float64 `json:"training" yaml:"training" validate:"gte=0,lte=100"`
	Personality   float64 `json:"personality" yaml:"personality" validate:"gte=0,lte=100"`
	AreaLiving    float64 `json:"area_living" yaml:"area_living" validate:"gte=0,lte=100"`
}

// UnmarshalJSON rejects unknown criterion names.
func (w *CriteriaWeights) UnmarshalJSON(data []byte) error {
	type plain CriteriaWeights
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p plain
	if err := dec.Decode(&p); err != nil {
		return fmt.Errorf("criteria weights: %w", err)
	}
	*w = CriteriaWeights(p)
	return nil
}

func (w CriteriaWeights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("criteria weights: %w", err)
	}
	return nil
}

// Weight returns the weight configured for c.
func (w CriteriaWeights) Weight(c Criterion) float64 {
	switch c {
	case CriterionSkill:
		return w.Skill
	case CriterionExperience:
		return w.Experience
	case CriterionEducation:
		return w.Education
	case CriterionCertification:
		return w.Certification
	case CriterionTraining:
		return w.Training
	case CriterionPersonality:
		return w.Personality
	case CriterionAreaLiving:
		return w.AreaLiving
	}
	return 0
}

// Enabled returns the criteria with a positive weight, in evaluation order.
func (w CriteriaWeights) Enabled() []Criterion {
	var out []Criterion
	for _, c := range AllCriteria {
		if w.Weight(c) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Total is the sum of all weights.
func (w CriteriaWeights) Total() float64 {
	var sum float64
	for _, c := range AllCriteria {
		sum += w.Weight(c)
	}
	return sum
}

// Option adjusts a single ScoreApplication call.
type Option func(*scoreOptions)

type scoreOptions struct {
	areaCity string
}

// WithAreaCity sets the posting's city for the area_living criterion.
func WithAreaCity(city string) Option {
	return func(o *scoreOptions) {
		o.areaCity = city
	}
}

// Engine scores submissions against a catalog. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	catalog *Catalog
	cfg     Config
}

// NewEngine fills zero config values with defaults and validates the result.
// Multiplier keys are normalized like position names.
func NewEngine(catalog *Catalog, cfg Config) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("scoring: catalog is required")
	}
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.Weights.Education == nil && cfg.Weights.Experience == nil && cfg.Weights.Certifications == nil {
		cfg.Weights = DefaultScoringWeights()
	}
	if cfg.Multipliers == nil {
		cfg.Multipliers = DefaultMultipliers()
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	cfg.Weights = cfg.Weights.clone()
	multipliers := make(map[string]CategoryMultipliers, len(cfg.Multipliers))
	for k, v := range cfg.Multipliers {
		multipliers[normalizePosition(k)] = v
	}
	cfg.Multipliers = multipliers

	return &Engine{catalog: catalog, cfg: cfg}, nil
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Multipliers returns the category multipliers for position, if any.
func (e *Engine) Multipliers(position string) (CategoryMultipliers, bool) {
	m, ok := e.cfg.Multipliers[normalizePosition(position)]
	return m, ok
}

// ScoreApplication scores every enabled criterion and combines them into a
// weight-normalized total in [0,100]. An all-zero weight set yields a total of 0.
func (e *Engine) ScoreApplication(sub Submission, weights CriteriaWeights, opts ...Option) AggregateResult {
	var o scoreOptions
	for _, opt := range opts {
		opt(&o)
	}

	result := AggregateResult{
		Position:       normalizePosition(sub.Position),
		CriteriaScores: make(map[Criterion]int),
		Breakdown:      make(map[Criterion]CriterionScore),
	}

	profile, known := e.catalog.profiles[result.Position]
	multipliers, hasMultipliers := e.cfg.Multipliers[result.Position]

	var weighted, totalWeight float64
	for _, c := range weights.Enabled() {
		cs := e.scoreCriterion(c, sub, profile, known, o)
		if e.cfg.ApplyMultipliers && hasMultipliers {
			if m := multipliers.For(c); m != 1.0 {
				cs.Score = clampRound(float64(cs.Score) * m)
			}
		}
		w := weights.Weight(c)
		weighted += float64(cs.Score) * w
		totalWeight += w

		result.CriteriaScores[c] = cs.Score
		result.Breakdown[c] = cs
	}

	if totalWeight > 0 {
		result.TotalScore = clampRound(math.Round(weighted / totalWeight))
	}
	return result
}

func (e *Engine) scoreCriterion(c Criterion, sub Submission, p PositionProfile, known bool, o scoreOptions) CriterionScore {
	switch c {
	case CriterionSkill:
		return e.scoreSkill(sub, p, known)
	case CriterionExperience:
		return e.scoreExperience(sub)
	case CriterionEducation:
		return e.scoreEducation(sub, p)
	case CriterionCertification:
		return e.scoreCertification(sub, p)
	case CriterionTraining:
		return e.scoreTraining(sub)
	case CriterionPersonality:
		return e.scorePersonality(sub)
	case CriterionAreaLiving:
		return scoreAreaLiving(sub.City, o.areaCity)
	}
	return CriterionScore{Matched: []string{}}
}
