package scoring

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// ErrInvalidCatalog is returned when a catalog document is malformed or incomplete.
var ErrInvalidCatalog = errors.New("invalid position catalog")

// SkillTiers splits a position's skill vocabulary by importance.
type SkillTiers struct {
	Required  []string `yaml:"required" json:"required"`
	Preferred []string `yaml:"preferred" json:"preferred"`
	Bonus     []string `yaml:"bonus" json:"bonus"`
}

type ExperienceProfile struct {
	Keywords   []string `yaml:"keywords" json:"keywords"`
	Roles      []string `yaml:"roles" json:"roles"`
	Industries []string `yaml:"industries" json:"industries"`
}

type TrainingProfile struct {
	Certifications []string `yaml:"certifications" json:"certifications"`
	Courses        []string `yaml:"courses" json:"courses"`
	Workshops      []string `yaml:"workshops" json:"workshops"`
}

type EducationProfile struct {
	Preferred []string `yaml:"preferred" json:"preferred"`
	Relevant  []string `yaml:"relevant" json:"relevant"`
}

type PersonalityProfile struct {
	Traits   []string `yaml:"traits" json:"traits"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// PositionProfile is the reference vocabulary for a single job position.
type PositionProfile struct {
	Skills      SkillTiers         `yaml:"skills" json:"skills"`
	Experience  ExperienceProfile  `yaml:"experience" json:"experience"`
	Training    TrainingProfile    `yaml:"training" json:"training"`
	Education   EducationProfile   `yaml:"education" json:"education"`
	Personality PersonalityProfile `yaml:"personality" json:"personality"`
}

// ExperienceTerms returns keywords, roles and industries in that order.
// Duplicates across the three lists are kept.
func (p PositionProfile) ExperienceTerms() []string {
	return concat(p.Experience.Keywords, p.Experience.Roles, p.Experience.Industries)
}

func (p PositionProfile) PersonalityTerms() []string {
	return concat(p.Personality.Traits, p.Personality.Keywords)
}

func (p PositionProfile) TrainingTerms() []string {
	return concat(p.Training.Courses, p.Training.Workshops)
}

func (p PositionProfile) clone() PositionProfile {
	return PositionProfile{
		Skills: SkillTiers{
			Required:  concat(p.Skills.Required),
			Preferred: concat(p.Skills.Preferred),
			Bonus:     concat(p.Skills.Bonus),
		},
		Experience: ExperienceProfile{
			Keywords:   concat(p.Experience.Keywords),
			Roles:      concat(p.Experience.Roles),
			Industries: concat(p.Experience.Industries),
		},
		Training: TrainingProfile{
			Certifications: concat(p.Training.Certifications),
			Courses:        concat(p.Training.Courses),
			Workshops:      concat(p.Training.Workshops),
		},
		Education: EducationProfile{
			Preferred: concat(p.Education.Preferred),
			Relevant:  concat(p.Education.Relevant),
		},
		Personality: PersonalityProfile{
			Traits:   concat(p.Personality.Traits),
			Keywords: concat(p.Personality.Keywords),
		},
	}
}

func (p PositionProfile) validate() error {
	switch {
	case len(p.Skills.Required)+len(p.Skills.Preferred)+len(p.Skills.Bonus) == 0:
		return errors.New("skills are empty")
	case len(p.ExperienceTerms()) == 0:
		return errors.New("experience is empty")
	case len(p.Training.Certifications)+len(p.TrainingTerms()) == 0:
		return errors.New("training is empty")
	case len(p.Education.Preferred)+len(p.Education.Relevant) == 0:
		return errors.New("education is empty")
	case len(p.PersonalityTerms()) == 0:
		return errors.New("personality is empty")
	}
	return nil
}

// Catalog is the read-only set of position profiles. It is safe for
// concurrent use once constructed.
type Catalog struct {
	profiles map[string]PositionProfile
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
	defaultCatalogErr  error
)

// DefaultCatalog returns the catalog embedded in the binary, parsed once per process.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(bytes.NewReader(embeddedCatalog))
	})
	return defaultCatalog, defaultCatalogErr
}

// LoadCatalog parses a YAML catalog keyed by position identifier.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var raw map[string]PositionProfile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(raw)
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// NewCatalog builds a catalog from profiles. Position keys are normalized
// and every profile must have all five categories populated.
func NewCatalog(profiles map[string]PositionProfile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[string]PositionProfile, len(profiles))}
	for position, profile := range profiles {
		key := normalizePosition(position)
		if key == "" {
			return nil, fmt.Errorf("%w: empty position identifier", ErrInvalidCatalog)
		}
		if _, dup := c.profiles[key]; dup {
			return nil, fmt.Errorf("%w: duplicate position %q", ErrInvalidCatalog, key)
		}
		c.profiles[key] = profile.clone()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first position whose profile is incomplete.
func (c *Catalog) Validate() error {
	if len(c.profiles) == 0 {
		return fmt.Errorf("%w: no positions defined", ErrInvalidCatalog)
	}
	for _, position := range c.Positions() {
		if err := c.profiles[position].validate(); err != nil {
			return fmt.Errorf("%w: position %q: %v", ErrInvalidCatalog, position, err)
		}
	}
	return nil
}

// Profile returns a copy of the profile for position.
func (c *Catalog) Profile(position string) (PositionProfile, bool) {
	p, ok := c.profiles[normalizePosition(position)]
	if !ok {
		return PositionProfile{}, false
	}
	return p.clone(), true
}

func (c *Catalog) Has(position string) bool {
	_, ok := c.profiles[normalizePosition(position)]
	return ok
}

// Positions returns the sorted position identifiers.
func (c *Catalog) Positions() []string {
	out := make([]string, 0, len(c.profiles))
	for k := range c.profiles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizePosition(position string) string {
	return strings.TrimSpace(lower(position))
}

func concat(lists ...[]string) []string {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]string, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
