package v1

import (
	"net/http"

	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUC domain.CatalogUsecase
}

func NewCatalogHandler(r *gin.RouterGroup, catalogUC domain.CatalogUsecase) {
	handler := &CatalogHandler{catalogUC: catalogUC}

	r.GET("/positions", handler.List)
	r.GET("/positions/:position", handler.Get)
}

// ListPositions godoc
// @Summary      List positions
// @Description  Positions known to the reference catalog with their category multipliers
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /positions [get]
func (h *CatalogHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Positions retrieved", h.catalogUC.ListPositions(c.Request.Context()))
}

// GetPosition godoc
// @Summary      Get a position profile
// @Tags         catalog
// @Produce      json
// @Param        position  path      string  true  "Position, e.g. barista or server%2Fwaiter"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /positions/{position} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	// "server/waiter" arrives escaped as server%2Fwaiter
	detail, err := h.catalogUC.GetPosition(c.Request.Context(), c.Param("position"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Position retrieved", detail)
}
