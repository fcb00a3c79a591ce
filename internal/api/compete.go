package api

import (
	"net/http"

	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type competeRoutes struct {
	cs service.CompeteServiceI
}

func NewCompeteRoutes(handler *gin.RouterGroup, cs service.CompeteServiceI, a *auth.SessionAuth) {
	r := &competeRoutes{cs: cs}
	h := handler.Group("/compete")
	{
		h.GET("/leaderboard", a.Optional(), r.GetLeaderboard)
		h.GET("/challenges", a.Optional(), r.ListChallenges)
		h.POST("/challenges/:id/join", a.Required(), r.JoinChallenge)
	}
}

func (r *competeRoutes) GetLeaderboard(c *gin.Context) {
	leaderboard, err := r.cs.GetLeaderboard(c.Request.Context(), currentSession(c))
	if err != nil {
		logger.Logger().Error("failed to get leaderboard", zap.Error(err))
		respondError(c, err, "failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

func (r *competeRoutes) ListChallenges(c *gin.Context) {
	challenges, err := r.cs.ListChallenges(c.Request.Context(), currentSession(c))
	if err != nil {
		logger.Logger().Error("failed to list challenges", zap.Error(err))
		respondError(c, err, "failed to list challenges")
		return
	}

	c.JSON(http.StatusOK, challenges)
}

func (r *competeRoutes) JoinChallenge(c *gin.Context) {
	session := currentSession(c)
	id := c.Param("id")

	challenge, err := r.cs.JoinChallenge(c.Request.Context(), session, id)
	if err != nil {
		logger.Logger().Error("failed to join challenge",
			zap.String("user_email", session.UserEmail()),
			zap.String("challenge_id", id),
			zap.Error(err))
		respondError(c, err, "failed to join challenge")
		return
	}

	c.JSON(http.StatusOK, challenge)
}
