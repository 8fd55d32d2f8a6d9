package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSimilarityThreshold is the minimum normalized similarity for a fuzzy match.
const DefaultSimilarityThreshold = 0.7

var tokenSeparator = regexp.MustCompile(`[,\n\r]+`)

// SkillMatch lists the vocabulary terms found in applicant text.
type SkillMatch struct {
	Matches []string `json:"matches"`
	Score   float64  `json:"score"`
}

// lower folds s to lower case. A Caser keeps internal state so one is built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Tokenize splits applicant text on commas and line breaks into trimmed,
// lowercased, non-empty tokens.
func Tokenize(text string) []string {
	parts := tokenSeparator.Split(lower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)), with lengths
// counted in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

// MatchSkills reports which vocabulary terms appear in applicantText. A term
// matches a token on equality, containment in either direction, or a
// similarity of at least threshold.
func MatchSkills(applicantText string, vocabulary []string, threshold float64) SkillMatch {
	result := SkillMatch{Matches: []string{}}
	if len(vocabulary) == 0 {
		return result
	}

	tokens := Tokenize(applicantText)
	for _, term := range vocabulary {
		needle := strings.TrimSpace(lower(term))
		if needle == "" {
			continue
		}
		for _, token := range tokens {
			if tokenMatches(token, needle, threshold) {
				result.Matches = append(result.Matches, term)
				break
			}
		}
	}

	result.Score = float64(len(result.Matches)) / float64(len(vocabulary))
	return result
}

func tokenMatches(token, term string, threshold float64) bool {
	if token == term || strings.Contains(token, term) || strings.Contains(term, token) {
		return true
	}
	return Similarity(token, term) >= threshold
}

// containsTerms returns the terms whose lowercase form occurs anywhere in text.
func containsTerms(text string, terms []string) []string {
	haystack := lower(text)
	matched := []string{}
	for _, term := range terms {
		needle := strings.TrimSpace(lower(term))
		if needle != "" && strings.Contains(haystack, needle) {
			matched = append(matched, term)
		}
	}
	return matched
}
