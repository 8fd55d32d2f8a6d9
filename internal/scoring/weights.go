package scoring

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LevelTable maps a qualitative level name to its point value (0-100).
type LevelTable map[string]int

// Lookup returns the highest valued level whose name occurs in text as a
// whole phrase. Equal values resolve to the alphabetically first level.
func (t LevelTable) Lookup(text string) (level string, points int, ok bool) {
	haystack := lower(text)
	if strings.TrimSpace(haystack) == "" {
		return "", 0, false
	}
	for _, name := range t.levels() {
		if containsPhrase(haystack, lower(name)) {
			v := t[name]
			if !ok || v > points {
				level, points, ok = name, v, true
			}
		}
	}
	return level, points, ok
}

func (t LevelTable) levels() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (t LevelTable) clone() LevelTable {
	out := make(LevelTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// SkillWeights are the points awarded for full coverage of each skill tier.
type SkillWeights struct {
	Required  int `yaml:"required" json:"required" validate:"gte=0,lte=100,gtefield=Preferred"`
	Preferred int `yaml:"preferred" json:"preferred" validate:"gte=0,lte=100,gtefield=Bonus"`
	Bonus     int `yaml:"bonus" json:"bonus" validate:"gte=0,lte=100"`
}

// ScoringWeights holds the level tables used for point lookups.
type ScoringWeights struct {
	Education      LevelTable   `yaml:"education" json:"education" validate:"required,dive,gte=0,lte=100"`
	Experience     LevelTable   `yaml:"experience" json:"experience" validate:"required,dive,gte=0,lte=100"`
	Skills         SkillWeights `yaml:"skills" json:"skills"`
	Certifications LevelTable   `yaml:"certifications" json:"certifications" validate:"required,dive,gte=0,lte=100"`
}

func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Education: LevelTable{
			"phd":                 100,
			"doctorate":           100,
			"doctoral":            100,
			"ph.d":                100,
			"master":              85,
			"masters":             85,
			"master's":            85,
			"mba":                 85,
			"graduate degree":     85,
			"bachelor":            70,
			"bachelors":           70,
			"bachelor's":          70,
			"undergraduate":       70,
			"college degree":      70,
			"associate":           55,
			"associates":          55,
			"associate's":         55,
			"community college":   50,
			"trade school":        45,
			"vocational training": 45,
			"certificate program": 40,
			"high school":         30,
			"ged":                 30,
			"diploma":             30,
		},
		Experience: LevelTable{
			"10+ years":         100,
			"8-10 years":        90,
			"5-8 years":         80,
			"3-5 years":         70,
			"2-3 years":         60,
			"1-2 years":         50,
			"6 months - 1 year": 40,
			"entry level":       30,
			"no experience":     20,
			"internship":        35,
			"volunteer":         25,
		},
		Skills: SkillWeights{Required: 100, Preferred: 75, Bonus: 50},
		Certifications: LevelTable{
			"professional license":   100,
			"industry certification": 90,
			"safety certification":   85,
			"specialized training":   80,
			"workshop completion":    60,
			"online course":          50,
			"basic training":         40,
		},
	}
}

// Validate checks ranges and that skill tiers are ordered required >= preferred >= bonus.
func (w ScoringWeights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("scoring weights: %w", err)
	}
	return nil
}

func (w ScoringWeights) clone() ScoringWeights {
	return ScoringWeights{
		Education:      w.Education.clone(),
		Experience:     w.Experience.clone(),
		Skills:         w.Skills,
		Certifications: w.Certifications.clone(),
	}
}

// ExperienceLevel maps years of experience onto an experience level name.
func ExperienceLevel(years float64) string {
	switch {
	case years >= 10:
		return "10+ years"
	case years >= 8:
		return "8-10 years"
	case years >= 5:
		return "5-8 years"
	case years >= 3:
		return "3-5 years"
	case years >= 2:
		return "2-3 years"
	case years >= 1:
		return "1-2 years"
	case years >= 0.5:
		return "6 months - 1 year"
	case years > 0:
		return "entry level"
	default:
		return "no experience"
	}
}

// CategoryMultipliers scale a position's sub-scores per category.
type CategoryMultipliers struct {
	Education      float64 `yaml:"education" json:"education" validate:"gt=0,lte=3"`
	Experience     float64 `yaml:"experience" json:"experience" validate:"gt=0,lte=3"`
	Skills         float64 `yaml:"skills" json:"skills" validate:"gt=0,lte=3"`
	Certifications float64 `yaml:"certifications" json:"certifications" validate:"gt=0,lte=3"`
}

// For returns the multiplier applied to criterion c. Criteria outside the
// four categories are not scaled.
func (m CategoryMultipliers) For(c Criterion) float64 {
	switch c {
	case CriterionSkill:
		return m.Skills
	case CriterionExperience:
		return m.Experience
	case CriterionEducation:
		return m.Education
	case CriterionCertification:
		return m.Certifications
	default:
		return 1.0
	}
}

func DefaultMultipliers() map[string]CategoryMultipliers {
	return map[string]CategoryMultipliers{
		"kitchen-helper": {Education: 0.6, Experience: 1.2, Skills: 1.4, Certifications: 1.0},
		"server/waiter":  {Education: 0.7, Experience: 1.3, Skills: 1.2, Certifications: 0.9},
		"housekeeping":   {Education: 0.5, Experience: 1.1, Skills: 1.3, Certifications: 1.1},
		"cashier":        {Education: 0.8, Experience: 1.0, Skills: 1.2, Certifications: 1.0},
		"barista":        {Education: 0.7, Experience: 1.1, Skills: 1.3, Certifications: 1.0},
		"gardener":       {Education: 0.6, Experience: 1.2, Skills: 1.3, Certifications: 1.1},
		"receptionist":   {Education: 0.9, Experience: 1.0, Skills: 1.1, Certifications: 1.0},
	}
}

// containsPhrase reports whether phrase occurs in text bounded by
// non-alphanumeric runes, so "ged" does not match "managed".
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for offset := 0; offset <= len(text)-len(phrase); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
