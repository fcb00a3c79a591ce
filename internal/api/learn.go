package api

import (
	"net/http"

	"ecotrack/internal/catalog"

	"github.com/gin-gonic/gin"
)

func NewLearnRoutes(handler *gin.RouterGroup) {
	h := handler.Group("/learn")
	{
		h.GET("/tips", func(c *gin.Context) { c.JSON(http.StatusOK, catalog.EcoTips()) })
		h.GET("/regions", func(c *gin.Context) { c.JSON(http.StatusOK, catalog.Regions()) })
		h.GET("/facts", func(c *gin.Context) { c.JSON(http.StatusOK, catalog.EcoFacts()) })
		h.GET("/badges", func(c *gin.Context) { c.JSON(http.StatusOK, catalog.Badges()) })
	}
}
