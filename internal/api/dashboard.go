package api

import (
	"net/http"

	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type dashboardRoutes struct {
	ds service.DashboardServiceI
}

func NewDashboardRoutes(handler *gin.RouterGroup, ds service.DashboardServiceI, a *auth.SessionAuth) {
	r := &dashboardRoutes{ds: ds}
	h := handler.Group("/dashboard")
	h.Use(a.Required())
	{
		h.GET("", r.GetDashboard)
	}
}

func (r *dashboardRoutes) GetDashboard(c *gin.Context) {
	session := currentSession(c)

	dashboard, err := r.ds.GetDashboard(c.Request.Context(), session)
	if err != nil {
		logger.Logger().Error("failed to build dashboard",
			zap.String("user_email", session.UserEmail()),
			zap.Error(err))
		respondError(c, err, "failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
