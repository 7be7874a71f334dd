// Package router maps the API surface onto the handlers. All booking
// endpoints live under /api/v1; only reservation creation requires a
// session, matching the original API.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/yerassyl/event-reservation/internal/config"
	"github.com/yerassyl/event-reservation/internal/handler"
	"github.com/yerassyl/event-reservation/internal/middleware"
	"github.com/yerassyl/event-reservation/internal/session"
)

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Events       *handler.EventHandler
	Reservations *handler.ReservationHandler
	Auth         *handler.AuthHandler
	Feedback     *handler.FeedbackHandler
}

// RegisterRoutes wires middleware and endpoints on the Echo instance.
// rdb may be nil, which disables rate limiting.
func RegisterRoutes(e *echo.Echo, h Handlers, sessions *session.Store, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Use(echomw.Recover())
	e.Use(middleware.RateLimit(rlCfg, rdb))

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/api/v1")

	// Events
	v1.GET("/events", h.Events.List)
	v1.GET("/eventPagedList", h.Events.PagedList)
	v1.GET("/event/:id", h.Events.Get)
	v1.GET("/events/availabilitySearch", h.Events.AvailabilitySearch)
	v1.POST("/event", h.Events.Save)
	v1.PATCH("/event", h.Events.Patch)
	v1.DELETE("/event/:id", h.Events.Delete)

	// Reservations; creation requires an authenticated session.
	v1.GET("/reservations", h.Reservations.List)
	v1.GET("/reservation/:id", h.Reservations.Get)
	v1.POST("/reservation", h.Reservations.Save, middleware.RequireSession(sessions))
	v1.DELETE("/reservation/:id", h.Reservations.Delete)

	// Users and sessions
	v1.POST("/register", h.Auth.Register)
	v1.POST("/login", h.Auth.Login)
	v1.POST("/logout", h.Auth.Logout)
	v1.GET("/user/current", h.Auth.CurrentUser, middleware.ResolveSession(sessions))

	// Feedback
	v1.POST("/feedback", h.Feedback.Submit)
	v1.GET("/feedback", h.Feedback.ListAll)
}
