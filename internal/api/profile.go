package api

import (
	"net/http"

	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type profileRoutes struct {
	ps service.ProfileServiceI
}

func NewProfileRoutes(handler *gin.RouterGroup, ps service.ProfileServiceI, a *auth.SessionAuth) {
	r := &profileRoutes{ps: ps}
	h := handler.Group("/profile")
	h.Use(a.Required())
	{
		h.GET("", r.GetProfile)
		h.PUT("/goal", r.UpdateDailyGoal)
	}
}

func (r *profileRoutes) GetProfile(c *gin.Context) {
	session := currentSession(c)

	profile, err := r.ps.GetProfile(c.Request.Context(), session)
	if err != nil {
		logger.Logger().Error("failed to build profile",
			zap.String("user_email", session.UserEmail()),
			zap.Error(err))
		respondError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdateGoalRequest struct {
	DailyGoal float64 `json:"daily_goal"`
}

func (r *profileRoutes) UpdateDailyGoal(c *gin.Context) {
	log := logger.Logger()

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session := currentSession(c)
	progress, err := r.ps.UpdateDailyGoal(c.Request.Context(), session, req.DailyGoal)
	if err != nil {
		log.Error("failed to update daily goal",
			zap.String("user_email", session.UserEmail()),
			zap.Float64("daily_goal", req.DailyGoal),
			zap.Error(err))
		respondError(c, err, "failed to update daily goal")
		return
	}

	c.JSON(http.StatusOK, progress)
}
