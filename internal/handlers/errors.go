package handlers

import (
	"net/http"

	"github.com/alimgiray/shiftledger/internal/middleware"
	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/alimgiray/shiftledger/pkg/logger"
	"github.com/gin-gonic/gin"
)

// statusForKind maps a service error kind to its HTTP status
func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindCapacityExceeded, services.KindNotAvailable, services.KindWeekFinalized:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a service error; internal failures are logged and hidden
func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Internal error")
		c.JSON(status, gin.H{"error": "Internal server error", "kind": services.KindInternal})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "kind": services.KindValidation})
}

// principal returns the authenticated caller; the route group guarantees one exists
func principal(c *gin.Context) models.Principal {
	p, _ := middleware.GetPrincipal(c)
	return p
}

// weekParam reads a date path parameter and normalizes it to its week
func weekParam(c *gin.Context, name string) (models.WeekKey, bool) {
	week, err := models.ParseWeekKey(c.Param(name))
	if err != nil {
		badRequest(c, err.Error())
		return "", false
	}
	return week, true
}
