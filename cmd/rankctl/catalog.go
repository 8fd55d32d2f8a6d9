package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"hireranker-backend/internal/scoring"

	"github.com/spf13/cobra"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List catalog positions",
	Long:  "Lists every position in the catalog with its vocabulary sizes and category multipliers.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := loadCatalog(catalogPath)
		if err != nil {
			return err
		}
		return writePositions(cmd.OutOrStdout(), catalog, scoring.DefaultMultipliers())
	},
}

var validateCatalogFile string

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog",
	Short: "Validate a catalog YAML file",
	Long:  "Parses a catalog file and checks that every position has all five categories populated.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := scoring.LoadCatalogFile(validateCatalogFile)
		if err != nil {
			return fmt.Errorf("catalog %s is invalid: %w", validateCatalogFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog %s is valid (%d positions)\n", validateCatalogFile, len(catalog.Positions()))
		return nil
	},
}

func init() {
	validateCatalogCmd.Flags().StringVarP(&validateCatalogFile, "file", "f", "", "Path to catalog YAML file (required)")
	if err := validateCatalogCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(positionsCmd, validateCatalogCmd)
}

func loadCatalog(path string) (*scoring.Catalog, error) {
	if path == "" {
		return scoring.DefaultCatalog()
	}
	catalog, err := scoring.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return catalog, nil
}

func writePositions(w io.Writer, catalog *scoring.Catalog, multipliers map[string]scoring.CategoryMultipliers) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POSITION\tREQUIRED\tPREFERRED\tBONUS\tMULTIPLIERS (EDU/EXP/SKL/CRT)")
	for _, position := range catalog.Positions() {
		profile, _ := catalog.Profile(position)
		m, ok := multipliers[position]
		mult := "-"
		if ok {
			mult = fmt.Sprintf("%.1f/%.1f/%.1f/%.1f", m.Education, m.Experience, m.Skills, m.Certifications)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", position,
			len(profile.Skills.Required), len(profile.Skills.Preferred), len(profile.Skills.Bonus), mult)
	}
	return tw.Flush()
}
