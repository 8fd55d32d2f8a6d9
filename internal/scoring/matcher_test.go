package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("  Espresso Machine,latte art\r\n\n, ,Customer Service  ")
	assert.Equal(t, []string{"espresso machine", "latte art", "customer service"}, tokens)
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize(",,\n\r"))
}

func TestSimilarity(t *testing.T) {
	t.Run("both empty is identical", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("", ""))
	})

	t.Run("one empty is disjoint", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "abc"))
	})

	t.Run("normalized by longer string", func(t *testing.T) {
		assert.InDelta(t, 6.0/7.0, Similarity("cashier", "cashiar"), 1e-9)
		assert.Equal(t, 0.7, Similarity("abcdefghij", "abcdefgxyz"))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"barista", "baristas"},
			{"food prep", "food preparation"},
			{"café", "cafe"},
			{"", "x"},
		}
		for _, p := range pairs {
			assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q vs %q", p[0], p[1])
		}
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		assert.InDelta(t, 0.75, Similarity("café", "cafe"), 1e-9)
	})
}

func TestMatchSkills(t *testing.T) {
	vocab := []string{"Espresso Machine", "latte art", "customer service", "cash handling"}

	t.Run("exact and containment matches keep vocabulary spelling", func(t *testing.T) {
		m := MatchSkills("espresso machine, advanced latte art techniques", vocab, DefaultSimilarityThreshold)
		assert.Equal(t, []string{"Espresso Machine", "latte art"}, m.Matches)
		assert.Equal(t, 0.5, m.Score)
	})

	t.Run("token contained in term", func(t *testing.T) {
		m := MatchSkills("cash", vocab, DefaultSimilarityThreshold)
		assert.Equal(t, []string{"cash handling"}, m.Matches)
	})

	t.Run("fuzzy match on typo", func(t *testing.T) {
		m := MatchSkills("custumer servise", vocab, DefaultSimilarityThreshold)
		assert.Equal(t, []string{"customer service"}, m.Matches)
	})

	t.Run("empty text", func(t *testing.T) {
		m := MatchSkills("", vocab, DefaultSimilarityThreshold)
		assert.Empty(t, m.Matches)
		assert.NotNil(t, m.Matches)
		assert.Equal(t, 0.0, m.Score)
	})

	t.Run("empty vocabulary", func(t *testing.T) {
		m := MatchSkills("anything", nil, DefaultSimilarityThreshold)
		assert.Empty(t, m.Matches)
		assert.Equal(t, 0.0, m.Score)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		m := MatchSkills("abcdefgxyz", []string{"abcdefghij"}, 0.7)
		assert.Equal(t, []string{"abcdefghij"}, m.Matches)

		m = MatchSkills("abcdefgxyz", []string{"abcdefghij"}, 0.71)
		assert.Empty(t, m.Matches)
	})

	t.Run("single edit exactly at threshold", func(t *testing.T) {
		th := Similarity("cashiar", "cashier")
		assert.Equal(t, []string{"cashier"}, MatchSkills("cashiar", []string{"cashier"}, th).Matches)
		assert.Empty(t, MatchSkills("cashiar", []string{"cashier"}, th+0.01).Matches)
	})
}

func TestMatchSkillsCatalogProperties(t *testing.T) {
	c, err := DefaultCatalog()
	if !assert.NoError(t, err) {
		return
	}
	text := "food preparation, cleaning, customer service, cash handling, pruning, phone etiquette, latte art"
	for _, position := range c.Positions() {
		p, _ := c.Profile(position)
		m := MatchSkills(text, p.Skills.Required, DefaultSimilarityThreshold)
		assert.GreaterOrEqual(t, m.Score, 0.0, position)
		assert.LessOrEqual(t, m.Score, 1.0, position)
		assert.Subset(t, p.Skills.Required, m.Matches, position)
	}
}
