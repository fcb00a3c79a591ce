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

type localRoutes struct {
	ls service.LocalServiceI
}

func NewLocalRoutes(handler *gin.RouterGroup, ls service.LocalServiceI, a *auth.SessionAuth) {
	r := &localRoutes{ls: ls}
	h := handler.Group("/local")
	{
		h.GET("/events", a.Optional(), r.ListEvents)
		h.POST("/events/:id/register", a.Required(), r.RegisterForEvent)
		h.PUT("/location", a.Required(), r.UpdateLocation)
		h.GET("/wildlife", a.Optional(), r.GetWildlife)
	}
}

func (r *localRoutes) ListEvents(c *gin.Context) {
	events, err := r.ls.ListEvents(c.Request.Context(), currentSession(c))
	if err != nil {
		logger.Logger().Error("failed to list events", zap.Error(err))
		respondError(c, err, "failed to list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (r *localRoutes) RegisterForEvent(c *gin.Context) {
	session := currentSession(c)
	id := c.Param("id")

	event, err := r.ls.RegisterForEvent(c.Request.Context(), session, id)
	if err != nil {
		logger.Logger().Error("failed to register for event",
			zap.String("user_email", session.UserEmail()),
			zap.String("event_id", id),
			zap.Error(err))
		respondError(c, err, "failed to register for event")
		return
	}

	c.JSON(http.StatusOK, event)
}

type UpdateLocationRequest struct {
	Location string `json:"location"`
}

func (r *localRoutes) UpdateLocation(c *gin.Context) {
	log := logger.Logger()

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session := currentSession(c)
	user, err := r.ls.UpdateLocation(c.Request.Context(), session, req.Location)
	if err != nil {
		log.Error("failed to update location",
			zap.String("user_email", session.UserEmail()),
			zap.Error(err))
		respondError(c, err, "failed to update location")
		return
	}

	c.JSON(http.StatusOK, user)
}

type wildlifeResponse struct {
	catalog.Wildlife
	Card       catalog.Card `json:"card"`
	CardIndex  int          `json:"card_index"`
	TotalCards int          `json:"total_cards"`
}

// GetWildlife resolves the area from ?area=, then the caller's saved location.
func (r *localRoutes) GetWildlife(c *gin.Context) {
	area := c.Query("area")
	if area == "" {
		if s := currentSession(c); s != nil {
			area = s.Location
		}
	}

	index := 0
	if raw := c.Query("card"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card index"})
			return
		}
		index = n
	}

	w := catalog.WildlifeFor(area)
	total := len(w.Cards())

	c.JSON(http.StatusOK, wildlifeResponse{
		Wildlife:   w,
		Card:       w.CardAt(index),
		CardIndex:  ((index % total) + total) % total,
		TotalCards: total,
	})
}
