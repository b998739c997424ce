// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/handler"
	"github.com/showtix/movie-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check used by load balancers and
// monitoring to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations (register, login, refresh, logout) live under /v1/auth;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the presented refresh token.
	g.POST("/refresh", a.Refresh)
	// Logout takes the refresh token in the body, so no JWT is required.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterAPI wires the booking API under /v1. Every route requires an
// access token; customer routes accept both roles, the /v1/admin group is
// ADMIN only. extra middleware (cache, rate limit) is applied to the
// movie listing, which is the read-heavy endpoint.
func RegisterAPI(e *echo.Echo, c *handler.CatalogHandler, b *handler.BookingHandler, ad *handler.AdminHandler, jwtSecret string, listMW ...echo.MiddlewareFunc) {
	api := e.Group("/v1")
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole("USER", "ADMIN"))

	api.GET("/movies", c.ListMovies, listMW...)
	api.POST("/bookings", b.CreateBooking)
	api.GET("/bookings", b.ListBookings)
	api.POST("/bookings/:id/cancel", b.CancelBooking)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/movies", ad.AddMovie)
	admin.GET("/stats", ad.Stats)
}
