package handler

import (
	"dealer-catalog-sync/internal/adapter/http/middleware"
	"dealer-catalog-sync/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SyncSvc        ports.SyncService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10)) // trigger bodies are tiny

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes
	v1 := r.Group("/api/v1")

	syncHandler := NewSyncHandler(deps.SyncSvc)
	sync := v1.Group("/sync")
	{
		sync.POST("/:processType", syncHandler.TriggerSync)
		sync.GET("/runs/:id", syncHandler.GetRun)
		sync.GET("/locks/:processType", syncHandler.GetLockStatus)
	}

	return r
}
