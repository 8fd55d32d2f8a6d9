package v1

import (
	"strconv"

	"hireranker-backend/pkg/apperror"
	"hireranker-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter, reporting a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid " + name))
		return 0, false
	}
	return id, true
}

// bindError converts a binding failure into a validation error.
func bindError(c *gin.Context, err error) {
	c.Error(apperror.Validation(validation.FormatValidationErrors(err)))
}
