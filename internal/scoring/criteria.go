package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Criterion is one evaluation axis of an application.
type Criterion string

const (
	CriterionSkill         Criterion = "skill"
	CriterionExperience    Criterion = "experience"
	CriterionEducation     Criterion = "education"
	CriterionCertification Criterion = "certification"
	CriterionTraining      Criterion = "training"
	CriterionPersonality   Criterion = "personality"
	CriterionAreaLiving    Criterion = "area_living"
)

// AllCriteria lists every criterion in evaluation order.
var AllCriteria = []Criterion{
	CriterionSkill,
	CriterionExperience,
	CriterionEducation,
	CriterionCertification,
	CriterionTraining,
	CriterionPersonality,
	CriterionAreaLiving,
}

// educationFieldBonus is added when the education text names a field the position prefers.
const educationFieldBonus = 15

// ExperienceMatch is the result of matching experience text against a position.
type ExperienceMatch struct {
	RelevantExperience bool     `json:"relevant_experience"`
	MatchedKeywords    []string `json:"matched_keywords"`
	Score              float64  `json:"score"`
}

// PersonalityMatch lists the traits found in the resume text.
type PersonalityMatch struct {
	MatchedTraits []string `json:"matched_traits"`
	Score         float64  `json:"score"`
}

// TrainingMatch lists the training terms found in the resume text.
type TrainingMatch struct {
	MatchedTerms []string `json:"matched_terms"`
	Score        float64  `json:"score"`
}

// MatchExperience checks the position's experience keywords, roles and
// industries for plain containment in text. Unknown positions yield the zero match.
func (c *Catalog) MatchExperience(text, position string) ExperienceMatch {
	p, ok := c.profiles[normalizePosition(position)]
	if !ok {
		return ExperienceMatch{MatchedKeywords: []string{}}
	}
	terms := p.ExperienceTerms()
	matched := containsTerms(text, terms)
	return ExperienceMatch{
		RelevantExperience: len(matched) > 0,
		MatchedKeywords:    matched,
		Score:              ratio(len(matched), len(terms)),
	}
}

// MatchPersonality checks the position's personality traits.
func (c *Catalog) MatchPersonality(text, position string) PersonalityMatch {
	p, ok := c.profiles[normalizePosition(position)]
	if !ok {
		return PersonalityMatch{MatchedTraits: []string{}}
	}
	terms := p.PersonalityTerms()
	matched := containsTerms(text, terms)
	return PersonalityMatch{MatchedTraits: matched, Score: ratio(len(matched), len(terms))}
}

// MatchTraining checks the position's courses and workshops.
func (c *Catalog) MatchTraining(text, position string) TrainingMatch {
	p, ok := c.profiles[normalizePosition(position)]
	if !ok {
		return TrainingMatch{MatchedTerms: []string{}}
	}
	terms := p.TrainingTerms()
	matched := containsTerms(text, terms)
	return TrainingMatch{MatchedTerms: matched, Score: ratio(len(matched), len(terms))}
}

func (e *Engine) scoreSkill(sub Submission, p PositionProfile, known bool) CriterionScore {
	if !known {
		return unknownPosition(sub.Position)
	}
	text := sub.KeySkills + "\n" + sub.ResumeSummary
	th := e.cfg.SimilarityThreshold
	required := MatchSkills(text, p.Skills.Required, th)
	preferred := MatchSkills(text, p.Skills.Preferred, th)
	bonus := MatchSkills(text, p.Skills.Bonus, th)

	w := e.cfg.Weights.Skills
	raw := required.Score*float64(w.Required) +
		preferred.Score*float64(w.Preferred) +
		bonus.Score*float64(w.Bonus)

	return CriterionScore{
		Score:   clampRound(raw),
		Matched: concat(required.Matches, preferred.Matches, bonus.Matches),
		Reasoning: fmt.Sprintf("Matched %d of %d required, %d of %d preferred and %d of %d bonus skills",
			len(required.Matches), len(p.Skills.Required),
			len(preferred.Matches), len(p.Skills.Preferred),
			len(bonus.Matches), len(p.Skills.Bonus)),
	}
}

func (e *Engine) scoreExperience(sub Submission) CriterionScore {
	if !e.catalog.Has(sub.Position) {
		return unknownPosition(sub.Position)
	}
	text := joinText(sub.ExperienceText, sub.ResumeSummary, sub.OCRTranscript)
	m := e.catalog.MatchExperience(text, sub.Position)
	if !m.RelevantExperience {
		return CriterionScore{Matched: m.MatchedKeywords, Reasoning: "No relevant experience found"}
	}

	level := ExperienceLevel(sub.ExperienceYears)
	levelPoints := e.cfg.Weights.Experience[level]
	score := clampRound(m.Score * 100)
	if levelPoints > score {
		score = levelPoints
	}
	return CriterionScore{
		Score:     score,
		Matched:   m.MatchedKeywords,
		Reasoning: fmt.Sprintf("%d relevant experience terms, %s", len(m.MatchedKeywords), level),
	}
}

func (e *Engine) scorePersonality(sub Submission) CriterionScore {
	if !e.catalog.Has(sub.Position) {
		return unknownPosition(sub.Position)
	}
	text := joinText(sub.ResumeSummary, sub.ExperienceText, sub.OCRTranscript)
	m := e.catalog.MatchPersonality(text, sub.Position)
	return CriterionScore{
		Score:     clampRound(m.Score * 100),
		Matched:   m.MatchedTraits,
		Reasoning: fmt.Sprintf("Matched %d personality traits", len(m.MatchedTraits)),
	}
}

func (e *Engine) scoreTraining(sub Submission) CriterionScore {
	if !e.catalog.Has(sub.Position) {
		return unknownPosition(sub.Position)
	}
	text := joinText(sub.Certifications, sub.ResumeSummary, sub.OCRTranscript)
	m := e.catalog.MatchTraining(text, sub.Position)
	return CriterionScore{
		Score:     clampRound(m.Score * 100),
		Matched:   m.MatchedTerms,
		Reasoning: fmt.Sprintf("Matched %d courses or workshops", len(m.MatchedTerms)),
	}
}

func (e *Engine) scoreEducation(sub Submission, p PositionProfile) CriterionScore {
	text := strings.TrimSpace(sub.EducationLevel)
	if text == "" {
		return CriterionScore{Matched: []string{}, Reasoning: "No education information provided"}
	}

	matched := []string{}
	score := 50
	reasoning := "Education level not recognised"
	if level, points, ok := e.cfg.Weights.Education.Lookup(text); ok {
		score = points
		matched = append(matched, level)
		reasoning = "Education level: " + level
	}

	if fields := containsTerms(text, p.Education.Preferred); len(fields) > 0 {
		score += educationFieldBonus
		matched = append(matched, fields...)
		reasoning += ", preferred field of study"
	}
	return CriterionScore{Score: clampRound(float64(score)), Matched: matched, Reasoning: reasoning}
}

func (e *Engine) scoreCertification(sub Submission, p PositionProfile) CriterionScore {
	text := strings.TrimSpace(sub.Certifications)
	if text == "" {
		return CriterionScore{Matched: []string{}, Reasoning: "No certifications provided"}
	}

	table := e.cfg.Weights.Certifications
	matched := []string{}
	score := 0
	reasoning := ""

	if level, points, ok := table.Lookup(text); ok {
		score = points
		matched = append(matched, level)
		reasoning = "Certification tier: " + level
	}
	if certs := containsTerms(text, p.Training.Certifications); len(certs) > 0 {
		matched = append(matched, certs...)
		if pts := table["industry certification"]; pts > score {
			score = pts
			reasoning = fmt.Sprintf("Holds %d position certifications", len(certs))
		}
	}
	if score == 0 {
		score = table["basic training"]
		reasoning = "Certification not recognised"
	}
	return CriterionScore{Score: clampRound(float64(score)), Matched: matched, Reasoning: reasoning}
}

// scoreAreaLiving compares the applicant's city with the posting's area city.
func scoreAreaLiving(applicantCity, areaCity string) CriterionScore {
	a := strings.TrimSpace(lower(applicantCity))
	b := strings.TrimSpace(lower(areaCity))
	if a == "" || b == "" {
		return CriterionScore{Matched: []string{}, Reasoning: "Location not provided"}
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return CriterionScore{Score: 100, Matched: []string{areaCity}, Reasoning: "Lives in the posting area"}
	}
	for _, w := range strings.Fields(a) {
		if utf8.RuneCountInString(w) > 3 && containsPhrase(b, w) {
			return CriterionScore{Score: 60, Matched: []string{w}, Reasoning: "Lives near the posting area"}
		}
	}
	return CriterionScore{Matched: []string{}, Reasoning: "Lives outside the posting area"}
}

func unknownPosition(position string) CriterionScore {
	return CriterionScore{Matched: []string{}, Reasoning: fmt.Sprintf("Unknown position %q", position)}
}

func joinText(parts ...string) string {
	return strings.Join(parts, "\n")
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func clampRound(v float64) int {
	r := int(math.Round(v))
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	}
	return r
}
