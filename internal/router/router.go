// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-planner/internal/config"
	"github.com/iliyamo/event-planner/internal/handler"
	"github.com/iliyamo/event-planner/internal/middleware"
	"github.com/iliyamo/event-planner/internal/store"
)

// RegisterRoutes registers routes that need no authentication or
// handlers, currently just the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterUsers registers the signup/login/exists endpoints plus the
// token-protected profile and tickets views.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, users store.UserStore) {
	g := e.Group("/users")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.GET("/exists", a.Exists)

	me := e.Group("/users/me", middleware.Auth(jwtSecret, users))
	me.GET("", a.Me)
	me.GET("/tickets", a.Tickets)
}

// RegisterEvents wires the event aggregate. The two public endpoints are
// registered outside the authenticated group; the public read goes
// through the Redis response cache when one is available.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, users store.UserStore, rdb *redis.Client, cacheCfg config.CacheConfig) {
	e.GET("/events/public/:id", h.GetPublic, middleware.Cache(rdb, cacheCfg))
	e.POST("/events/public/:id/register", h.PublicRegister)

	g := e.Group("/events", middleware.Auth(jwtSecret, users))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/register-scraped", h.RegisterScraped)

	g.POST("/:id/guests", h.AddGuest)
	g.PATCH("/:id/guests/:gid", h.UpdateGuestStatus)
	g.DELETE("/:id/guests/:gid", h.DeleteGuest)

	g.POST("/:id/tasks", h.AddTask)
	g.PATCH("/:id/tasks/:tid/toggle", h.ToggleTask)
	g.DELETE("/:id/tasks/:tid", h.DeleteTask)
}

// RegisterAI registers the generative-AI proxy endpoints; both require a
// valid token so the backend key is never burned for anonymous traffic.
func RegisterAI(e *echo.Echo, h *handler.AIHandler, jwtSecret string, users store.UserStore) {
	g := e.Group("/ai", middleware.Auth(jwtSecret, users))
	g.POST("/suggestions", h.Suggestions)
	g.POST("/scrape-events", h.ScrapeEvents)
}
