package v1

import (
	"net/http"

	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ScoringHandler struct {
	scoringUC domain.ScoringUsecase
}

func NewScoringHandler(r *gin.RouterGroup, scoringUC domain.ScoringUsecase, scoreLimiter gin.HandlerFunc) {
	handler := &ScoringHandler{scoringUC: scoringUC}

	r.POST("/rankings/:id/score", scoreLimiter, handler.ScoreRanking)
	r.POST("/applications/:id/score", scoreLimiter, handler.ScoreApplication)
	r.POST("/scoring/preview", handler.Preview)
}

// ScoreRanking godoc
// @Summary      Score pending applications
// @Description  Scores every pending application of a ranking, then recomputes ranks.
// @Description  Skipped and failed applicants are listed in errors.
// @Tags         scoring
// @Produce      json
// @Param        id   path      int  true  "Ranking ID"
// @Success      200  {object}  response.Response{data=domain.ScoringReport}
// @Failure      404  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /rankings/{id}/score [post]
func (h *ScoringHandler) ScoreRanking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.scoringUC.ScoreRanking(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, report.Message, report)
}

// ScoreApplication godoc
// @Summary      Rescore one application
// @Tags         scoring
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/score [post]
func (h *ScoringHandler) ScoreApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.scoringUC.ScoreApplication(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application scored", app)
}

// PreviewScore godoc
// @Summary      Preview a score
// @Description  Scores a submission against ad-hoc weights without saving anything
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        preview  body      domain.PreviewInput  true  "Submission and weights"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /scoring/preview [post]
func (h *ScoringHandler) Preview(c *gin.Context) {
	var input domain.PreviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.scoringUC.Preview(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Score preview", result)
}
