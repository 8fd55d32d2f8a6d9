package v1

import (
	"errors"
	"io"
	"net/http"

	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
	rankingUC     domain.RankingUsecase
}

type StatusChangeRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase, rankingUC domain.RankingUsecase, submitLimiter gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC, rankingUC: rankingUC}

	// Public application form
	apply := r.Group("/apply")
	{
		apply.GET("/:linkId", handler.GetPosting)
		apply.POST("/:linkId", submitLimiter, handler.Submit)
	}

	r.GET("/rankings/:id/applications", handler.ListByRanking)

	applications := r.Group("/applications")
	{
		applications.GET("/:id", handler.Get)
		applications.POST("/:id/select-for-interview", handler.changeStatus(domain.ApplicationStatusSelected, "Applicant selected for interview"))
		applications.POST("/:id/approve", handler.changeStatus(domain.ApplicationStatusApproved, "Application approved"))
		applications.POST("/:id/reject", handler.changeStatus(domain.ApplicationStatusRejected, "Application rejected"))
	}
}

// GetPosting godoc
// @Summary      Get a job posting by application link
// @Description  Public view of an active ranking. Criteria are shown only when the ranking allows it.
// @Tags         apply
// @Produce      json
// @Param        linkId  path      string  true  "Application link ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /apply/{linkId} [get]
func (h *ApplicationHandler) GetPosting(c *gin.Context) {
	posting, err := h.rankingUC.GetPublicRanking(c.Request.Context(), c.Param("linkId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job posting retrieved", posting)
}

// SubmitApplication godoc
// @Summary      Apply to a job posting
// @Description  Submit resume-derived text. The application is scored immediately when possible.
// @Tags         apply
// @Accept       json
// @Produce      json
// @Param        linkId       path      string                         true  "Application link ID"
// @Param        application  body      domain.SubmitApplicationInput  true  "Application JSON"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /apply/{linkId} [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var input domain.SubmitApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.applicationUC.SubmitApplication(c.Request.Context(), c.Param("linkId"), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListApplications godoc
// @Summary      List a ranking's applications
// @Description  Best ranked first. Unscored applications come last.
// @Tags         applications
// @Produce      json
// @Param        id         path      int     true   "Ranking ID"
// @Param        status     query     string  false  "Status filter"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /rankings/{id}/applications [get]
func (h *ApplicationHandler) ListByRanking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var filter domain.ApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}
	filter.RankingID = id

	result, err := h.applicationUC.ListByRanking(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", result)
}

// GetApplication godoc
// @Summary      Get an application
// @Description  Includes the per-criterion score breakdown
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationUC.GetApplication(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// changeStatus godoc
// @Summary      Change an application's review status
// @Description  select-for-interview, approve or reject. Notes are optional.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true   "Application ID"
// @Param        body  body      StatusChangeRequest  false  "Optional notes"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/approve [post]
func (h *ApplicationHandler) changeStatus(status, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req StatusChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			bindError(c, err)
			return
		}

		app, err := h.applicationUC.UpdateStatus(c.Request.Context(), id, status, req.Notes)
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, message, app)
	}
}
