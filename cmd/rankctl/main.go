// Package main implements rankctl, an offline tool for inspecting the position
// catalog and scoring submissions without a database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "rankctl",
	Short:        "HireRanker scoring toolkit",
	Long:         "rankctl lists catalog positions, validates catalog files and scores resume submissions offline.",
	SilenceUsage: true,
}

var catalogPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "Path to a catalog YAML file (default: embedded catalog)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
