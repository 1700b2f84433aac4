package router

import (
	"github.com/gin-gonic/gin"

	"poextract/internal/handler"
	"poextract/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	infoH *handler.InfoHandler,
	extractH *handler.ExtractHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/", infoH.Usage)
	r.POST("/extractPO", extractH.ExtractPO)
	r.POST("/get_text", extractH.GetText)

	return r
}
