package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/employee-search/api/internal/auth"
	"github.com/octobees/employee-search/api/internal/config"
	"github.com/octobees/employee-search/api/internal/handler"
	middlewarepkg "github.com/octobees/employee-search/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Search *handler.SearchHandler
	Health *handler.HealthHandler
}

// Register wires all HTTP routes for the API. jwtManager may be nil, in which case the
// search route is open.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/", handlers.Health.Health)
	e.GET("/healthz", handlers.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	if jwtManager != nil {
		api.Use(middlewarepkg.JWT(jwtManager), middlewarepkg.RequireScope(auth.ScopeSearch))
	}
	api.POST("/search-employees", handlers.Search.Search, middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))
}
