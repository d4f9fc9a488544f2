package handler

import (
	"AwarenessSimulator_SecurityProject/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the scenario, history and WebSocket endpoints.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", h.Healthz)
	router.GET("/ws/scenario", h.HandleScenarioConnection)

	public := router.Group("/api")
	{
		public.GET("/scenarios", h.ListScenarios)
		public.GET("/scenarios/:key", h.PreviewScenario)
	}

	protected := router.Group("/api").Use(middleware.AuthMiddleware())
	{
		protected.GET("/history", h.GetHistory)
		protected.GET("/history/transcripts/:filename", h.GetTranscript)
	}
}
