package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var filenameUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

type exportUsecase struct {
	rankingRepo     domain.RankingRepository
	applicationRepo domain.ApplicationRepository
	now             func() time.Time
}

// NewExportUsecase creates a new export usecase instance
func NewExportUsecase(rankingRepo domain.RankingRepository, appRepo domain.ApplicationRepository) domain.ExportUsecase {
	return &exportUsecase{rankingRepo: rankingRepo, applicationRepo: appRepo, now: time.Now}
}

// exportSummary aggregates total scores for the summary sheet.
type exportSummary struct {
	Total, Scored               int
	Average                     float64
	Max, Min                    int
	Excellent, Good, Fair, Poor int
}

// ExportRanking writes a ranking's applications, best ranked first.
func (u *exportUsecase) ExportRanking(ctx context.Context, rankingID int64, format string) ([]byte, string, error) {
	ranking, err := u.rankingRepo.GetByID(ctx, rankingID)
	if err != nil {
		return nil, "", notFoundOr(err, "Ranking not found")
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = domain.ExportFormatXLSX
	}
	if format != domain.ExportFormatXLSX && format != domain.ExportFormatCSV {
		return nil, "", apperror.BadRequest("Unsupported export format: " + format)
	}

	apps, total, err := u.applicationRepo.ListByRanking(ctx, domain.ApplicationFilter{
		RankingID: rankingID,
		Page:      1,
		PageSize:  domain.ExportLimit,
	})
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	criteria := criteriaColumns(ranking)
	header, rows := exportRows(apps, criteria)
	base := fmt.Sprintf("ranking_%s_%s", slug(ranking.Title), u.now().Format("20060102_150405"))

	if format == domain.ExportFormatCSV {
		data, err := writeCSV(header, rows)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		return data, base + ".csv", nil
	}

	data, err := writeExcel(ranking, header, rows, summarize(apps, total))
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, base + ".xlsx", nil
}

func criteriaColumns(r *domain.Ranking) []scoring.Criterion {
	if len(r.SelectedCriteria) == 0 {
		return r.CriteriaWeights.Enabled()
	}
	out := make([]scoring.Criterion, len(r.SelectedCriteria))
	for i, c := range r.SelectedCriteria {
		out[i] = scoring.Criterion(c)
	}
	return out
}

func exportRows(apps []domain.Application, criteria []scoring.Criterion) ([]string, [][]any) {
	header := []string{"RANK", "NAME", "EMAIL", "PHONE", "CITY", "STATUS", "TOTAL SCORE"}
	for _, c := range criteria {
		header = append(header, strings.ToUpper(strings.ReplaceAll(string(c), "_", " "))+" SCORE")
	}
	header = append(header, "SELECTED FOR INTERVIEW", "SUBMITTED AT")

	rows := make([][]any, 0, len(apps))
	for _, app := range apps {
		row := []any{
			intOrEmpty(app.Rank),
			app.ApplicantName,
			app.ApplicantEmail,
			deref(app.ApplicantPhone),
			deref(app.ApplicantCity),
			app.Status,
			intOrEmpty(app.TotalScore),
		}
		for _, c := range criteria {
			if app.Scores != nil {
				if s, ok := app.Scores.CriteriaScores[c]; ok {
					row = append(row, s)
					continue
				}
			}
			row = append(row, "")
		}
		interview := "NO"
		if app.SelectedForInterview {
			interview = "YES"
		}
		row = append(row, interview, app.SubmittedAt.Format("2006-01-02 15:04"))
		rows = append(rows, row)
	}
	return header, rows
}

// summarize aggregates the exported rows. total is the full application count,
// which can exceed len(apps) when the export is capped.
func summarize(apps []domain.Application, total int64) exportSummary {
	s := exportSummary{Total: int(total)}
	sum := 0
	for _, app := range apps {
		if app.TotalScore == nil {
			continue
		}
		score := *app.TotalScore
		if s.Scored == 0 || score > s.Max {
			s.Max = score
		}
		if s.Scored == 0 || score < s.Min {
			s.Min = score
		}
		s.Scored++
		sum += score

		switch {
		case score >= 90:
			s.Excellent++
		case score >= 70:
			s.Good++
		case score >= 50:
			s.Fair++
		default:
			s.Poor++
		}
	}
	if s.Scored > 0 {
		s.Average = float64(sum) / float64(s.Scored)
	}
	return s
}

// writeExcel generates a workbook with a ranking sheet and a summary sheet
func writeExcel(ranking *domain.Ranking, header []string, rows [][]any, summary exportSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Rankings"
	f.SetSheetName("Sheet1", sheetName)

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range header {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	lines := [][]any{
		{"Ranking", ranking.Title},
		{"Position", ranking.Position},
		{"Total Applications", summary.Total},
		{"Scored Applications", summary.Scored},
		{"Average Score", strconv.FormatFloat(summary.Average, 'f', 1, 64)},
		{"Highest Score", summary.Max},
		{"Lowest Score", summary.Min},
		{"Excellent (90-100)", summary.Excellent},
		{"Good (70-89)", summary.Good},
		{"Fair (50-69)", summary.Fair},
		{"Poor (0-49)", summary.Poor},
	}
	for i, line := range lines {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), line[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), line[1])
	}
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(header []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func intOrEmpty(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func slug(title string) string {
	s := strings.Trim(filenameUnsafe.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if s == "" {
		return "export"
	}
	return s
}
