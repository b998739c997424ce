package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/model"
)

// UserStore is the account access the admin handler needs.
type UserStore interface {
	Count(ctx context.Context) (int64, error)
}

// AdminHandler serves catalog administration and aggregate statistics.
// Route-level middleware restricts these endpoints to the ADMIN role.
type AdminHandler struct {
	Movies   MovieStore
	Bookings BookingStore
	Users    UserStore
}

func NewAdminHandler(movies MovieStore, bookings BookingStore, users UserStore) *AdminHandler {
	if movies == nil || bookings == nil || users == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{Movies: movies, Bookings: bookings, Users: users}
}

type addMovieReq struct {
	ID       int64  `json:"id" validate:"omitempty,gt=0"`
	Title    string `json:"title" validate:"required"`
	Genre    string `json:"genre"`
	Duration string `json:"duration" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
}

// AddMovie handles POST /v1/admin/movies. Title, duration and a positive
// price are required; an explicit id is optional and the database assigns
// the next one when it is absent. Movies are immutable once added.
func (h *AdminHandler) AddMovie(c echo.Context) error {
	var req addMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	movie := model.Movie{
		ID:       req.ID,
		Title:    req.Title,
		Genre:    req.Genre,
		Duration: req.Duration,
		Price:    req.Price,
	}
	if err := h.Movies.Create(ctx, &movie); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "movie added",
		"id":      movie.ID,
	})
}

// Stats handles GET /v1/admin/stats, returning row counts per table.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	movies, err := h.Movies.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count movies"})
	}
	bookings, err := h.Bookings.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count bookings"})
	}
	users, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count users"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movies":   movies,
		"bookings": bookings,
		"users":    users,
	})
}
