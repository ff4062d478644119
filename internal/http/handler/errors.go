package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"bugdesk.app/api-server/internal/service"
	"bugdesk.app/api-server/internal/store"
	"bugdesk.app/api-server/internal/workflow"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP status codes. Anything outside
// the known taxonomy is a 500 and logged; the known cases carry their own
// message to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSearchDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		var unknownRole *workflow.UnknownRoleError
		if errors.As(err, &unknownRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"path", c.FullPath(),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
