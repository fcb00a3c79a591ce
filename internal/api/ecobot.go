package api

import (
	"net/http"

	"ecotrack/internal/catalog"
	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type ecoBotRoutes struct {
	es service.EcoBotServiceI
}

func NewEcoBotRoutes(handler *gin.RouterGroup, es service.EcoBotServiceI, a *auth.SessionAuth) {
	r := &ecoBotRoutes{es: es}
	h := handler.Group("/ecobot")
	{
		h.GET("/prompts", r.GetPrompts)
		h.POST("/chat", a.Required(), r.Chat)
	}
}

func (r *ecoBotRoutes) GetPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"greeting": catalog.EcoBotGreeting,
		"prompts":  catalog.QuickPrompts(),
	})
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (r *ecoBotRoutes) Chat(c *gin.Context) {
	log := logger.Logger()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := r.es.Chat(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err, "failed to answer")
		return
	}

	c.JSON(http.StatusOK, reply)
}
