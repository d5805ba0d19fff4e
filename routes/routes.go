package routes

import (
	"github.com/gin-gonic/gin"

	"shootscout/handlers"
)

// RegisterResolveRoutes registers all endpoints for the resolution engine.
func RegisterResolveRoutes(r *gin.Engine, h *handlers.ResolveHandler) {
	api := r.Group("/api")
	{
		api.POST("/resolve", h.ResolvePhotographers)
		api.GET("/resolve/snapshot", h.GetSnapshot)
		api.DELETE("/resolve", h.CancelResolution)
	}

	r.GET("/healthz", handlers.Healthz)
}
