package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/catalog"
	"github.com/showtix/movie-booking/internal/model"
	"github.com/showtix/movie-booking/internal/queue"
	"github.com/showtix/movie-booking/internal/repository"
	"github.com/showtix/movie-booking/internal/seating"
)

// BookingHandler serves booking creation, listing with analytics, and
// cancellation. Publish is optional; when set it is invoked after a
// successful create with a confirmation event, and failures there never
// fail the booking itself.
type BookingHandler struct {
	Movies   MovieStore
	Bookings BookingStore
	Publish  func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

func NewBookingHandler(movies MovieStore, bookings BookingStore) *BookingHandler {
	if movies == nil || bookings == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Movies: movies, Bookings: bookings}
}

type createBookingReq struct {
	MovieID  int64  `json:"movie_id" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Seats    []int  `json:"seats" validate:"omitempty,dive,gte=1,lte=50"`
	NumSeats int    `json:"num_seats" validate:"omitempty,gte=1,lte=50"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
}

// CreateBooking handles POST /v1/bookings. The movie is validated by
// binary search over the id-ordered catalog. When the request names no
// seats, the allocator picks num_seats (default 1) closest to the center
// of the hall; the booking is then priced by the seats actually assigned,
// which can be fewer than requested when the showing is nearly full.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seen := make(map[int]bool, len(req.Seats))
	for _, s := range req.Seats {
		if seen[s] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate seat in request"})
		}
		seen[s] = true
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// The lookup requires an id-ordered list, so always re-fetch ordered.
	movies, err := h.Movies.ListOrderedByID(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	movie, ok := catalog.FindByID(movies, req.MovieID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	seats := req.Seats
	if len(seats) == 0 {
		want := req.NumSeats
		if want <= 0 {
			want = 1
		}
		booked, err := h.Bookings.SeatsForShowing(ctx, req.MovieID, req.Date, req.Time)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booked seats"})
		}
		seats = seating.Allocate(booked, want)
	}

	booking := model.Booking{
		MovieID:    req.MovieID,
		MovieTitle: movie.Title,
		Date:       req.Date,
		Time:       req.Time,
		Seats:      seats,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Total:      int64(len(seats)) * movie.Price,
		Status:     model.StatusConfirmed,
		Reference:  uuid.NewString(),
	}
	if err := h.Bookings.Create(ctx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	if h.Publish != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:   booking.ID,
			Reference:   booking.Reference,
			MovieID:     booking.MovieID,
			MovieTitle:  booking.MovieTitle,
			Date:        booking.Date,
			Time:        booking.Time,
			Seats:       booking.Seats,
			Total:       booking.Total,
			Email:       booking.Email,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			if err := h.Publish(pubCtx, ev); err != nil {
				log.Printf("booking %d: publish confirmation failed: %v", ev.BookingID, err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Booking confirmed!",
		"id":        booking.ID,
		"reference": booking.Reference,
		"seats":     booking.Seats,
		"total":     booking.Total,
	})
}

// ListBookings handles GET /v1/bookings. An optional ?search= keeps only
// bookings whose email or phone contains the term (case-insensitive).
// Two aggregates keyed by movie title ride along with the rows: seats
// booked and revenue, both computed over exactly the returned set and
// both counting cancelled bookings.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bookings, err := h.Bookings.List(ctx, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}

	seatsPerMovie := make(map[string]int)
	revenuePerMovie := make(map[string]int64)
	for _, b := range bookings {
		seatsPerMovie[b.MovieTitle] += len(b.Seats)
		revenuePerMovie[b.MovieTitle] += b.Total
	}

	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bookings,
		"analytics": echo.Map{
			"total_bookings_per_movie": seatsPerMovie,
			"total_revenue_per_movie":  revenuePerMovie,
		},
	})
}

// CancelBooking handles POST /v1/bookings/:id/cancel. An unknown id is a
// 404; a booking that is already cancelled reports success without
// touching the row, so repeats are idempotent. Cancellation flips the
// status and nothing else: the record stays, the seats stay retired from
// the showing, and past analytics are never adjusted.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	booking, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if booking.Status == model.StatusCancelled {
		return c.JSON(http.StatusOK, echo.Map{"message": "booking already cancelled"})
	}
	if err := h.Bookings.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}
