package domain

import "context"

// Export formats
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// ExportLimit caps the number of applications written to one export.
const ExportLimit = 10000

type ExportUsecase interface {
	// ExportRanking returns the file content and a suggested filename.
	ExportRanking(ctx context.Context, rankingID int64, format string) ([]byte, string, error)
}
