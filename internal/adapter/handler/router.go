package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/call-analyzer/pkg/config"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	callHandler  *CallHandler
	healthChecks map[string]HealthCheck
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, callHandler *CallHandler, healthChecks map[string]HealthCheck) *Router {
	return &Router{
		cfg:          cfg,
		callHandler:  callHandler,
		healthChecks: healthChecks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	rt.setupCallRoutes(v1)
}

// setupCallRoutes configures call analysis routes
func (rt *Router) setupCallRoutes(g *echo.Group) {
	if rt.callHandler == nil {
		g.POST("/analyze-call", rt.notImplemented)
		g.POST("/analyze-transcript", rt.notImplemented)
		g.GET("/analyses", rt.notImplemented)
		g.GET("/analyses/:id", rt.notImplemented)
		g.GET("/analyses/:id/audio", rt.notImplemented)
		return
	}

	g.POST("/analyze-call", rt.callHandler.AnalyzeCall)
	g.POST("/analyze-transcript", rt.callHandler.AnalyzeTranscript)
	g.GET("/analyses", rt.callHandler.ListAnalyses)
	g.GET("/analyses/:id", rt.callHandler.GetAnalysis)
	g.GET("/analyses/:id/audio", rt.callHandler.GetAudio)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status; any failing dependency turns it 503
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	components := make(map[string]string, len(rt.healthChecks))
	for name, check := range rt.healthChecks {
		if err := check(ctx); err != nil {
			components[name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(code, map[string]interface{}{
		"status":      status,
		"environment": environment,
		"components":  components,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
