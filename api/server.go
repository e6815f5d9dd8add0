// ABOUTME: HTTP server setup: gin router, middleware chain and CORS
// ABOUTME: Routes map to the handlers package; the server wraps the router with rs/cors

package api

import (
	"net/http"
	"time"

	"newslens-api/api/handlers"
	"newslens-api/api/middleware"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/featureflags"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Config holds the pieces the router is built from
type Config struct {
	Pipeline handlers.Pipeline
	Logger   interfaces.Logger
	Limiter  *middleware.RateLimiter
	Flags    featureflags.Manager
	Version  string
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.RequestLogging(cfg.Logger), middleware.Recovery(cfg.Logger))

	h := handlers.New(cfg.Pipeline, cfg.Logger, cfg.Version)
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	if cfg.Limiter != nil {
		v1.Use(middleware.RateLimit(cfg.Limiter, cfg.Flags))
	}
	v1.GET("/search", h.Search)
	v1.GET("/article", h.Article)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found"})
	})

	return router
}

// NewHandler wraps the router with CORS for browser clients
func NewHandler(cfg Config) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}).Handler(NewRouter(cfg))
}

// NewServer returns an http.Server for addr. Write timeout leaves room
// for a full batch with per-item delays.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
