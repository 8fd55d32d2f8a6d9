package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hireranker-backend/config"
	"hireranker-backend/internal/domain"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRankingUC struct {
	created domain.CreateRankingInput
}

func (f *fakeRankingUC) CreateRanking(ctx context.Context, input domain.CreateRankingInput) (*domain.Ranking, error) {
	f.created = input
	return &domain.Ranking{ID: 1, Title: input.Title, Position: input.Position, ApplicationLinkID: "job-1"}, nil
}

func (f *fakeRankingUC) ListActiveRankings(ctx context.Context) ([]domain.Ranking, error) {
	return []domain.Ranking{}, nil
}

func (f *fakeRankingUC) GetRanking(ctx context.Context, id int64) (*domain.Ranking, error) {
	return nil, apperror.NotFound("Ranking not found")
}

func (f *fakeRankingUC) GetPublicRanking(ctx context.Context, linkID string) (*domain.PublicRanking, error) {
	return &domain.PublicRanking{ApplicationLinkID: linkID}, nil
}

func (f *fakeRankingUC) DeactivateRanking(ctx context.Context, id int64) error { return nil }

type fakeApplicationUC struct {
	status string
	notes  string
}

func (f *fakeApplicationUC) SubmitApplication(ctx context.Context, linkID string, input domain.SubmitApplicationInput) (*domain.Application, error) {
	return &domain.Application{ID: 9, ApplicantName: input.ApplicantName, Status: domain.ApplicationStatusPending}, nil
}

func (f *fakeApplicationUC) ListByRanking(ctx context.Context, filter domain.ApplicationFilter) (*domain.PaginatedResult[domain.Application], error) {
	return domain.NewPaginatedResult[domain.Application](nil, 0, 1, 20), nil
}

func (f *fakeApplicationUC) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	return &domain.Application{ID: id}, nil
}

func (f *fakeApplicationUC) UpdateStatus(ctx context.Context, id int64, status, notes string) (*domain.Application, error) {
	f.status, f.notes = status, notes
	return &domain.Application{ID: id, Status: status}, nil
}

type fakeScoringUC struct{}

func (fakeScoringUC) ScoreRanking(ctx context.Context, rankingID int64) (*domain.ScoringReport, error) {
	return &domain.ScoringReport{Message: "Successfully scored 2 out of 3 applications", ScoredCount: 2, TotalApplications: 3,
		Errors: []string{"Skipped Bob: No resume data available"}}, nil
}

func (fakeScoringUC) ScoreApplication(ctx context.Context, applicationID int64) (*domain.Application, error) {
	return &domain.Application{ID: applicationID}, nil
}

func (fakeScoringUC) Preview(ctx context.Context, input domain.PreviewInput) (*scoring.AggregateResult, error) {
	return &scoring.AggregateResult{Position: input.Submission.Position}, nil
}

type fakeCatalogUC struct {
	requested string
}

func (f *fakeCatalogUC) ListPositions(ctx context.Context) []domain.PositionSummary {
	return []domain.PositionSummary{{Position: "barista"}}
}

func (f *fakeCatalogUC) GetPosition(ctx context.Context, position string) (*domain.PositionDetail, error) {
	f.requested = position
	return &domain.PositionDetail{Position: position}, nil
}

type fakeExportUC struct{}

func (fakeExportUC) ExportRanking(ctx context.Context, rankingID int64, format string) ([]byte, string, error) {
	return []byte("RANK,NAME\n1,Alice\n"), "ranking_test.csv", nil
}

type fakeHealthUC struct{}

func (fakeHealthUC) Check(ctx context.Context) map[string]string {
	return map[string]string{"status": "ok", "database": "ok", "redis": "disabled"}
}

type testServer struct {
	router  *gin.Engine
	ranking *fakeRankingUC
	apps    *fakeApplicationUC
	catalog *fakeCatalogUC
}

func newTestServer(t *testing.T, submitLimit int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := scoring.DefaultCatalog()
	require.NoError(t, err)

	s := &testServer{ranking: &fakeRankingUC{}, apps: &fakeApplicationUC{}, catalog: &fakeCatalogUC{}}
	s.router = NewRouter(RouterDeps{
		RankingUC:     s.ranking,
		ApplicationUC: s.apps,
		ScoringUC:     fakeScoringUC{},
		CatalogUC:     s.catalog,
		ExportUC:      fakeExportUC{},
		HealthUC:      fakeHealthUC{},
		Catalog:       catalog,
		Config: &config.Config{
			AppEnv:                    "test",
			RateLimitWindowSeconds:    60,
			RateLimitGlobalThreshold:  10000,
			RateLimitScoringThreshold: 10000,
			RateLimitSubmitThreshold:  submitLimit,
		},
	})
	return s
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     []string        `json:"error"`
	RequestID string          `json:"request_id"`
}

func (s *testServer) do(t *testing.T, method, path, body, remoteAddr string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 100)
	w, env := s.do(t, http.MethodGet, "/v1/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestCreateRanking_Binding(t *testing.T) {
	s := newTestServer(t, 100)

	t.Run("Should report field errors", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/v1/rankings", `{"title":"Pi","position":"pilot"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Validation failed", env.Message)
		assert.Contains(t, env.Error, "Position: Unknown position")
		assert.Contains(t, env.Error, "Title: Must be at least 3 characters")
	})

	t.Run("Should reject unknown criteria", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/v1/rankings",
			`{"title":"Barista","position":"barista","criteria_weights":{"charisma":50}}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should pass valid input through", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/v1/rankings",
			`{"title":"Barista","position":"Barista","criteria_weights":{"skill":60,"area_living":40}}`, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, 40.0, s.ranking.created.CriteriaWeights.AreaLiving)
	})
}

func TestInvalidPathID(t *testing.T) {
	s := newTestServer(t, 100)
	w, env := s.do(t, http.MethodGet, "/v1/rankings/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", env.Message)

	w, env = s.do(t, http.MethodGet, "/v1/rankings/12", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ranking not found", env.Message)
}

func TestGetPosition_EscapedSlash(t *testing.T) {
	s := newTestServer(t, 100)
	w, _ := s.do(t, http.MethodGet, "/v1/positions/server%2Fwaiter", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "server/waiter", s.catalog.requested)
}

func TestStatusActions(t *testing.T) {
	s := newTestServer(t, 100)

	w, _ := s.do(t, http.MethodPost, "/v1/applications/5/approve", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ApplicationStatusApproved, s.apps.status)
	assert.Empty(t, s.apps.notes)

	w, env := s.do(t, http.MethodPost, "/v1/applications/5/select-for-interview", `{"notes":"Tuesday 10am"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Applicant selected for interview", env.Message)
	assert.Equal(t, domain.ApplicationStatusSelected, s.apps.status)
	assert.Equal(t, "Tuesday 10am", s.apps.notes)
}

func TestScoreRanking_ReportsMessage(t *testing.T) {
	s := newTestServer(t, 100)
	w, env := s.do(t, http.MethodPost, "/v1/rankings/3/score", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully scored 2 out of 3 applications", env.Message)

	var report domain.ScoringReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 2, report.ScoredCount)
	assert.Len(t, report.Errors, 1)
}

func TestExport_Attachment(t *testing.T) {
	s := newTestServer(t, 100)
	w, _ := s.do(t, http.MethodGet, "/v1/rankings/3/export?format=csv", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="ranking_test.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "1,Alice")
}

func TestSubmit_RateLimited(t *testing.T) {
	s := newTestServer(t, 2)
	body := `{"applicant_name":"Alice Doe","applicant_email":"alice@example.com","key_skills":"latte art"}`
	addr := "203.0.113.77:4100"

	for i := 0; i < 2; i++ {
		w, _ := s.do(t, http.MethodPost, "/v1/apply/job-1", body, addr)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := s.do(t, http.MethodPost, "/v1/apply/job-1", body, addr)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// The public posting view is not behind the submission limit
	w, _ = s.do(t, http.MethodGet, "/v1/apply/job-1", "", addr)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmit_InvalidEmail(t *testing.T) {
	s := newTestServer(t, 100)
	w, env := s.do(t, http.MethodPost, "/v1/apply/job-1",
		`{"applicant_name":"Alice","applicant_email":"not-an-email"}`, "198.51.100.4:80")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "Email: Invalid email format")
}
