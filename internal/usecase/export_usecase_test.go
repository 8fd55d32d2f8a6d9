package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture(total int64) (*MockRankingRepo, *MockApplicationRepo) {
	ctx := context.Background()
	ranking := baristaRanking()
	ranking.SelectedCriteria = []string{"skill", "area_living"}

	top := baristaApplication(1, "Alice")
	top.Rank = intPtr(1)
	top.TotalScore = intPtr(92)
	top.Scores = &scoring.AggregateResult{CriteriaScores: map[scoring.Criterion]int{
		scoring.CriterionSkill:      88,
		scoring.CriterionAreaLiving: 100,
	}}
	second := baristaApplication(2, "Bob, Jr.")
	second.Rank = intPtr(2)
	second.TotalScore = intPtr(45)
	pending := baristaApplication(3, "Carol")

	rankings := new(MockRankingRepo)
	apps := new(MockApplicationRepo)
	rankings.On("GetByID", ctx, int64(7)).Return(ranking, nil)
	apps.On("ListByRanking", ctx, domain.ApplicationFilter{RankingID: 7, Page: 1, PageSize: domain.ExportLimit}).
		Return([]domain.Application{top, second, pending}, total, nil)
	return rankings, apps
}

func TestExportRanking_CSV(t *testing.T) {
	rankings, apps := exportFixture(3)
	uc := usecase.NewExportUsecase(rankings, apps)

	data, filename, err := uc.ExportRanking(context.Background(), 7, "CSV")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "ranking_morning_barista_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"RANK", "NAME", "EMAIL", "PHONE", "CITY", "STATUS", "TOTAL SCORE",
		"SKILL SCORE", "AREA LIVING SCORE", "SELECTED FOR INTERVIEW", "SUBMITTED AT"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "88", records[1][7])
	assert.Equal(t, "Bob, Jr.", records[2][1])
	assert.Equal(t, "", records[3][6])
}

func TestExportRanking_XLSX(t *testing.T) {
	rankings, apps := exportFixture(3)
	uc := usecase.NewExportUsecase(rankings, apps)

	data, filename, err := uc.ExportRanking(context.Background(), 7, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Rankings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	total, _ := f.GetCellValue("Summary", "B3")
	assert.Equal(t, "3", total)

	scored, _ := f.GetCellValue("Summary", "B4")
	assert.Equal(t, "2", scored)
	avg, _ := f.GetCellValue("Summary", "B5")
	assert.Equal(t, "68.5", avg)
	excellent, _ := f.GetCellValue("Summary", "B8")
	assert.Equal(t, "1", excellent)
	poor, _ := f.GetCellValue("Summary", "B11")
	assert.Equal(t, "1", poor)
}

func TestExportRanking_SummaryCountsBeyondExportLimit(t *testing.T) {
	rankings, apps := exportFixture(int64(domain.ExportLimit) + 250)
	uc := usecase.NewExportUsecase(rankings, apps)

	data, _, err := uc.ExportRanking(context.Background(), 7, "xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	total, _ := f.GetCellValue("Summary", "B3")
	assert.Equal(t, strconv.Itoa(domain.ExportLimit+250), total)
	scored, _ := f.GetCellValue("Summary", "B4")
	assert.Equal(t, "2", scored)
}

func TestExportRanking_UnsupportedFormat(t *testing.T) {
	ctx := context.Background()
	rankings := new(MockRankingRepo)
	rankings.On("GetByID", ctx, int64(7)).Return(baristaRanking(), nil)

	uc := usecase.NewExportUsecase(rankings, new(MockApplicationRepo))
	_, _, err := uc.ExportRanking(ctx, 7, "pdf")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))
}
