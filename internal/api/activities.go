package api

import (
	"net/http"
	"strconv"

	"ecotrack/internal/catalog"
	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type activityRoutes struct {
	as service.ActivityServiceI
}

func NewActivityRoutes(handler *gin.RouterGroup, as service.ActivityServiceI, a *auth.SessionAuth) {
	r := &activityRoutes{as: as}
	h := handler.Group("/activities")
	{
		h.GET("/factors", r.GetEmissionFactors)
		h.GET("/offsets", r.GetOffsetActions)
		h.GET("/preview", r.PreviewActivity)

		h.POST("", a.Required(), r.LogActivity)
		h.POST("/offsets", a.Required(), r.LogQuickOffset)
	}
}

func (r *activityRoutes) GetEmissionFactors(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.AllFactors())
}

func (r *activityRoutes) GetOffsetActions(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.OffsetActions())
}

func (r *activityRoutes) PreviewActivity(c *gin.Context) {
	log := logger.Logger()

	quantity, err := strconv.ParseFloat(c.Query("quantity"), 64)
	if err != nil {
		log.Debug("failed to parse quantity", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return
	}

	preview, err := r.as.Preview(c.Query("category"), c.Query("subcategory"), quantity)
	if err != nil {
		respondError(c, err, "failed to preview activity")
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (r *activityRoutes) LogActivity(c *gin.Context) {
	log := logger.Logger()

	var req service.LogActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session := currentSession(c)
	result, err := r.as.Record(c.Request.Context(), session, req)
	if err != nil {
		log.Error("failed to log activity",
			zap.String("user_email", session.UserEmail()),
			zap.String("category", req.Category),
			zap.Error(err))
		respondError(c, err, "failed to log activity")
		return
	}

	c.JSON(http.StatusCreated, result)
}

type quickOffsetRequest struct {
	Action string `json:"action" binding:"required"`
}

func (r *activityRoutes) LogQuickOffset(c *gin.Context) {
	log := logger.Logger()

	var req quickOffsetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session := currentSession(c)
	result, err := r.as.QuickOffset(c.Request.Context(), session, req.Action)
	if err != nil {
		log.Error("failed to log quick offset",
			zap.String("user_email", session.UserEmail()),
			zap.String("action", req.Action),
			zap.Error(err))
		respondError(c, err, "failed to log quick offset")
		return
	}

	c.JSON(http.StatusCreated, result)
}
