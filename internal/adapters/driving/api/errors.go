package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/logger"
)

// Error messages returned to clients.
const (
	msgInternal    = "Internal server error"
	msgUnavailable = "Food dataset is unavailable"
	msgParse       = "Failed to parse food dataset"
	msgBadRequest  = "Invalid request body"
)

// writeError maps a service error onto a status code and JSON body.
func writeError(c *gin.Context, err error) {
	status, body := errorResponseFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s (request %s): %v",
			c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponseFor(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusInternalServerError, errorResponse{Error: msgUnavailable}
	case errors.Is(err, domain.ErrParse):
		return http.StatusInternalServerError, errorResponse{Error: msgParse, Details: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: msgInternal}
	}
}
