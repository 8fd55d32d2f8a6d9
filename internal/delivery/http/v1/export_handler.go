package v1

import (
	"strings"

	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type ExportHandler struct {
	exportUC domain.ExportUsecase
}

func NewExportHandler(r *gin.RouterGroup, exportUC domain.ExportUsecase) {
	handler := &ExportHandler{exportUC: exportUC}
	r.GET("/rankings/:id/export", handler.Export)
}

// ExportRanking godoc
// @Summary      Export a ranking
// @Description  Download ranked applications as Excel (with a summary sheet) or CSV
// @Tags         rankings
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        id      path   int     true   "Ranking ID"
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200     {file}  file
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /rankings/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", domain.ExportFormatXLSX)

	data, filename, err := h.exportUC.ExportRanking(c.Request.Context(), id, format)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := contentTypeXLSX
	if strings.EqualFold(strings.TrimSpace(format), domain.ExportFormatCSV) {
		contentType = contentTypeCSV
	}
	response.Attachment(c, filename, contentType, data)
}
