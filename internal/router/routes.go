package router

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/cache"
	"github.com/mentorlink/api/internal/config"
	"github.com/mentorlink/api/internal/docs"
	"github.com/mentorlink/api/internal/handler"
	middlewarepkg "github.com/mentorlink/api/internal/middleware"
)

// CacheHealth is the part of the mentor cache reported by /healthz.
type CacheHealth interface {
	Ping(ctx context.Context) error
	Snapshot() cache.Stats
}

const healthTimeout = 2 * time.Second

// Handlers aggregates HTTP handlers used by the router.
// Cache is optional and left nil when no Redis URL is configured.
type Handlers struct {
	Auth        *handler.AuthHandler
	Mentors     *handler.MentorHandler
	Users       *handler.UserHandler
	Testimonies *handler.TestimonyHandler
	Files       *handler.FilesHandler
	Cache       CacheHealth
}

// Routes collects the route tables of every configured handler.
func (h Handlers) Routes() []handler.Route {
	var routes []handler.Route
	if h.Auth != nil {
		routes = append(routes, h.Auth.Routes()...)
	}
	if h.Mentors != nil {
		routes = append(routes, h.Mentors.Routes()...)
	}
	if h.Users != nil {
		routes = append(routes, h.Users.Routes()...)
	}
	if h.Testimonies != nil {
		routes = append(routes, h.Testimonies.Routes()...)
	}
	if h.Files != nil {
		routes = append(routes, h.Files.Routes()...)
	}
	return routes
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", healthz(handlers.Cache))

	routes := handlers.Routes()
	restoreLimiter := middlewarepkg.RateLimiter(cfg.RateLimitRestore)
	for _, route := range routes {
		e.Add(route.Method, route.Path, route.Handle(), chain(route, cfg, jwtManager, restoreLimiter)...)
	}

	e.GET("/docs/openapi.json", docs.Handler(docs.Build("Mentors API", "1.0.0", routes)))
}

func healthz(mentorCache CacheHealth) echo.HandlerFunc {
	return func(c echo.Context) error {
		if mentorCache == nil {
			return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()
		if err := mentorCache.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, handler.APIResponse{
				Status:  "error",
				Message: "cache unavailable",
				Data:    map[string]any{"status": "degraded", "cache": mentorCache.Snapshot()},
			})
		}
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok", "cache": mentorCache.Snapshot()})
	}
}

// chain returns the route middleware in order: rate limit, bearer guard, role check, upload.
func chain(route handler.Route, cfg *config.Config, jwtManager *auth.JWTManager, limiter echo.MiddlewareFunc) []echo.MiddlewareFunc {
	var mws []echo.MiddlewareFunc
	if route.RateLimited {
		mws = append(mws, limiter)
	}
	if route.Guarded() {
		mws = append(mws, middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(route.Roles...))
	}
	if route.Upload != "" {
		mws = append(mws, middlewarepkg.FileUpload(route.Upload, cfg.MaxImageSize))
	}
	return mws
}
