// Package handler defines the HTTP handlers. Each handler depends on
// small store interfaces declared here rather than concrete repositories,
// so tests can swap in fakes; the repository types satisfy them.
package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/model"
)

// validate checks request DTO struct tags. A single instance caches the
// compiled struct metadata.
var validate = validator.New()

// dbTimeout bounds every store round-trip made from a handler.
const dbTimeout = 5 * time.Second

// MovieStore is the catalog access a handler needs.
type MovieStore interface {
	ListAll(ctx context.Context) ([]model.Movie, error)
	ListOrderedByID(ctx context.Context) ([]model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
	Count(ctx context.Context) (int64, error)
}

// BookingStore is the ledger access a handler needs.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	List(ctx context.Context, search string) ([]model.Booking, error)
	GetByID(ctx context.Context, id int64) (model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	SeatsForShowing(ctx context.Context, movieID int64, date, showTime string) ([]int, error)
	Count(ctx context.Context) (int64, error)
}

// getUserID extracts the authenticated user id placed in the context by
// the JWT middleware and converts it to int64.
func getUserID(c echo.Context) (int64, error) {
	switch t := c.Get("user_id").(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
