// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"activitybooking/internal/handler"
	"activitybooking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Register, signin,
// refresh and logout live under /api/auth and need no token; /api/me
// is protected.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/signup", a.Signup)
	g.POST("/signin", a.Signin)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/api")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterAPI registers the event and booking routes. Every route
// here requires a valid access token; there is no unauthenticated
// listing. Addressing follows the query-parameter convention
// (?eventId=) for single-item operations.
func RegisterAPI(e *echo.Echo, ev *handler.EventHandler, bk *handler.BookingHandler, jwtSecret string) {
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret))

	api.GET("/events", ev.List)
	api.POST("/events", ev.Create)
	api.PUT("/events", ev.Update)
	api.DELETE("/events", ev.Delete)

	api.GET("/bookings", bk.List)
	api.POST("/bookings", bk.Create)
	api.PUT("/bookings", bk.Update)
	api.DELETE("/bookings", bk.Delete)
}
