package api

import (
	"errors"
	"net/http"

	"ecotrack/internal/model"
	"ecotrack/internal/service"
	"ecotrack/pkg/auth"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSelection),
		errors.Is(err, service.ErrInvalidGoal),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrProgressNotFound),
		errors.Is(err, service.ErrChallengeNotFound),
		errors.Is(err, service.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEventFull):
		return http.StatusConflict
	case errors.Is(err, service.ErrBackendRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Client errors carry the error text, server errors the fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	msg := fallback
	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

// currentSession is nil for anonymous callers on optional-auth routes.
func currentSession(c *gin.Context) *model.Session {
	s, _ := auth.SessionFrom(c)
	return s
}
