package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. Health, readiness, and metrics are
// public; everything under /api/v1 requires a Bearer token when jwtSecret is
// set.
func SetupRoutes(router *gin.Engine, handler *Handler, jwtSecret string, metricsHandler http.Handler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := router.Group("/api/v1")
	v1.Use(JWTMiddleware(jwtSecret))

	classify := v1.Group("/classify")
	classify.POST("", handler.Classify)            // POST /api/v1/classify
	classify.POST("/batch", handler.ClassifyBatch) // POST /api/v1/classify/batch

	leads := v1.Group("/leads")
	leads.GET("", handler.ListLeads)          // GET /api/v1/leads
	leads.GET("/summary", handler.GetSummary) // GET /api/v1/leads/summary

	v1.GET("/posts/:reddit_id", handler.GetPost)          // GET /api/v1/posts/:reddit_id
	v1.POST("/replies/:reddit_id", handler.GenerateReply) // POST /api/v1/replies/:reddit_id
}
