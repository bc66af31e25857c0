// Package api provides the HTTP server and route configuration.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/promptlab-go/internal/api/handler"
	"github.com/user/promptlab-go/internal/api/middleware"
	"github.com/user/promptlab-go/internal/config"
	"github.com/user/promptlab-go/internal/repository"
	"github.com/user/promptlab-go/internal/service"
	"go.uber.org/zap"
)

// Server wraps the HTTP router and dependencies.
type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

// ServerDeps holds all dependencies for the API server. Everything is
// constructed once in main and injected; there is no package-level state.
type ServerDeps struct {
	Pipeline             *service.Pipeline
	Store                *service.Store
	ExampleRepo          repository.ExampleRepository
	LogRepo              repository.OptimizeLogRepository
	GenerativeConfigured bool
	RateLimit            config.RateLimitConfig
	Logger               *zap.Logger
}

// NewServer creates a new API server with all routes configured.
func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware.
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit(deps.RateLimit, "/api/health"))

	// Health check (no rate limit via exempt path).
	healthHandler := handler.NewHealthHandler(deps.Store, deps.GenerativeConfigured)
	r.GET("/api/health", healthHandler.Health)

	optimizeHandler := handler.NewOptimizeHandler(deps.Pipeline)
	r.POST("/api/optimize", optimizeHandler.Optimize)

	examplesHandler := handler.NewExamplesHandler(deps.Store, deps.ExampleRepo, logger)
	r.GET("/api/examples", examplesHandler.List)
	r.PUT("/api/examples", examplesHandler.Replace)

	logsHandler := handler.NewLogsHandler(deps.LogRepo, logger)
	r.GET("/api/logs", logsHandler.List)
	r.GET("/api/logs/stats", logsHandler.Stats)

	return &Server{router: r, logger: logger}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}
