package v1

import (
	"net/http"

	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingUC domain.RankingUsecase
}

func NewRankingHandler(r *gin.RouterGroup, rankingUC domain.RankingUsecase) {
	handler := &RankingHandler{rankingUC: rankingUC}

	rankings := r.Group("/rankings")
	{
		rankings.POST("", handler.Create)
		rankings.GET("", handler.List)
		rankings.GET("/:id", handler.Get)
		rankings.DELETE("/:id", handler.Deactivate)
	}
}

// CreateRanking godoc
// @Summary      Create a ranking
// @Description  Create a job posting with criteria weights and a public application link
// @Tags         rankings
// @Accept       json
// @Produce      json
// @Param        ranking  body      domain.CreateRankingInput  true  "Ranking JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /rankings [post]
func (h *RankingHandler) Create(c *gin.Context) {
	var input domain.CreateRankingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ranking, err := h.rankingUC.CreateRanking(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Ranking created", ranking)
}

// ListRankings godoc
// @Summary      List active rankings
// @Description  Active rankings, newest first, with application and scored counts
// @Tags         rankings
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /rankings [get]
func (h *RankingHandler) List(c *gin.Context) {
	rankings, err := h.rankingUC.ListActiveRankings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rankings retrieved", rankings)
}

// GetRanking godoc
// @Summary      Get a ranking
// @Tags         rankings
// @Produce      json
// @Param        id   path      int  true  "Ranking ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /rankings/{id} [get]
func (h *RankingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ranking, err := h.rankingUC.GetRanking(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Ranking retrieved", ranking)
}

// DeactivateRanking godoc
// @Summary      Close a ranking
// @Description  Stops accepting applications. Existing applications and scores are kept.
// @Tags         rankings
// @Produce      json
// @Param        id   path      int  true  "Ranking ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /rankings/{id} [delete]
func (h *RankingHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.rankingUC.DeactivateRanking(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Ranking deactivated", nil)
}
