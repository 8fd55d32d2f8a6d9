package middleware

import (
	"errors"
	"net/http"

	"hireranker-backend/internal/delivery/http/response"
	"hireranker-backend/pkg/apperror"
	"hireranker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString("RequestID")

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed", "request_id", requestID, "path", c.FullPath(), "error", err)
			}
			if len(appErr.Details) > 0 {
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
				return
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Internal details stay in the server log
		logger.Log.Error("Internal Server Error", "request_id", requestID, "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
