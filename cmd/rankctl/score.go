package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"hireranker-backend/internal/scoring"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank submissions from a JSON file",
	Long: "Scores every submission in the input file against the given criteria weights and writes " +
		"the ranked results as JSON. Submissions without resume data are reported and left unranked.",
	RunE: runScore,
}

var (
	scoreInput         string
	scoreWeights       string
	scoreAreaCity      string
	scoreOutput        string
	scoreThreshold     float64
	scoreNoMultipliers bool
)

// rankedSubmission is one line of the score output.
type rankedSubmission struct {
	Rank           int                                          `json:"rank"`
	ID             int64                                        `json:"id"`
	Name           string                                       `json:"name"`
	TotalScore     int                                          `json:"total_score"`
	CriteriaScores map[scoring.Criterion]int                    `json:"criteria_scores"`
	Breakdown      map[scoring.Criterion]scoring.CriterionScore `json:"breakdown"`
}

type scoreOutputFile struct {
	Ranked  []rankedSubmission `json:"ranked"`
	Skipped []string           `json:"skipped"`
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "Path to submissions JSON array (required)")
	scoreCmd.Flags().StringVarP(&scoreWeights, "weights", "w", "", "Path to criteria weights JSON (required)")
	scoreCmd.Flags().StringVar(&scoreAreaCity, "area-city", "", "Posting city for the area_living criterion")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	scoreCmd.Flags().Float64Var(&scoreThreshold, "threshold", scoring.DefaultSimilarityThreshold, "Fuzzy skill match threshold in (0,1]")
	scoreCmd.Flags().BoolVar(&scoreNoMultipliers, "no-multipliers", false, "Disable per-position category multipliers")

	for _, name := range []string{"input", "weights"} {
		if err := scoreCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	// 1. Load inputs
	var submissions []scoring.Submission
	if err := readJSON(scoreInput, &submissions); err != nil {
		return fmt.Errorf("failed to read submissions: %w", err)
	}
	var weights scoring.CriteriaWeights
	if err := readJSON(scoreWeights, &weights); err != nil {
		return fmt.Errorf("failed to read weights: %w", err)
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	// 2. Build the engine
	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	cfg := scoring.DefaultConfig()
	cfg.SimilarityThreshold = scoreThreshold
	cfg.ApplyMultipliers = !scoreNoMultipliers
	engine, err := scoring.NewEngine(catalog, cfg)
	if err != nil {
		return err
	}

	// 3. Score and rank
	result := scoreBatch(engine, submissions, weights, scoreAreaCity)

	// 4. Write
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if scoreOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}
	if dir := filepath.Dir(scoreOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(scoreOutput, out, 0644); err != nil {
		return fmt.Errorf("failed to write results to %s: %w", scoreOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Scored %d of %d submissions -> %s\n", len(result.Ranked), len(submissions), scoreOutput)
	return nil
}

// scoreBatch scores submissions that carry resume data and ranks them.
// Submissions without an ID are numbered by their position in the input.
// Results are tracked by input position, so submissions sharing an ID are all kept.
func scoreBatch(engine *scoring.Engine, submissions []scoring.Submission, weights scoring.CriteriaWeights, areaCity string) scoreOutputFile {
	out := scoreOutputFile{Ranked: []rankedSubmission{}, Skipped: []string{}}
	results := make([]rankedSubmission, 0, len(submissions))
	submittedAt := make([]time.Time, 0, len(submissions))

	for i, sub := range submissions {
		if sub.ID == 0 {
			sub.ID = int64(i + 1)
		}
		if !sub.HasResumeData() {
			out.Skipped = append(out.Skipped, fmt.Sprintf("Skipped %s: No resume data available", sub.Name))
			continue
		}
		res := engine.ScoreApplication(sub, weights, scoring.WithAreaCity(areaCity))
		results = append(results, rankedSubmission{
			ID:             sub.ID,
			Name:           sub.Name,
			TotalScore:     res.TotalScore,
			CriteriaScores: res.CriteriaScores,
			Breakdown:      res.Breakdown,
		})
		submittedAt = append(submittedAt, sub.SubmittedAt)
	}

	// Rank entries are keyed by position in order, which sorts results by
	// submission ID, so the lowest-ID tie-break still holds.
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return results[order[a]].ID < results[order[b]].ID
	})
	entries := make([]scoring.RankEntry, len(order))
	for k, idx := range order {
		entries[k] = scoring.RankEntry{ID: int64(k), TotalScore: results[idx].TotalScore, SubmittedAt: submittedAt[idx]}
	}

	for _, e := range scoring.Rank(entries) {
		r := results[order[e.ID]]
		r.Rank = e.Rank
		out.Ranked = append(out.Ranked, r)
	}
	return out
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return decodeJSON(f, v)
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
