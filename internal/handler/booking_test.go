package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/model"
	"github.com/showtix/movie-booking/internal/queue"
)

type createResp struct {
	Message   string `json:"message"`
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Seats     []int  `json:"seats"`
	Total     int64  `json:"total"`
}

func TestCreateBooking(t *testing.T) {
	t.Parallel()

	t.Run("explicit seats priced per seat", func(t *testing.T) {
		t.Parallel()
		movies := &fakeMovieStore{movies: catalogMovies()}
		ledger := &fakeBookingStore{}
		h := NewBookingHandler(movies, ledger)

		c, rec := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":1,"date":"2026-09-01","time":"19:00","seats":[5,6],"email":"a@b.com"}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
		}
		var resp createResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Total != 500 {
			t.Errorf("total = %d, want 500", resp.Total)
		}
		if resp.Reference == "" {
			t.Error("reference is empty")
		}
		if len(ledger.bookings) != 1 {
			t.Fatalf("stored %d bookings, want 1", len(ledger.bookings))
		}
		stored := ledger.bookings[0]
		if stored.Status != model.StatusConfirmed {
			t.Errorf("status = %q, want %q", stored.Status, model.StatusConfirmed)
		}
		if stored.MovieTitle != "Inception" {
			t.Errorf("movie title = %q, want Inception", stored.MovieTitle)
		}
	})

	t.Run("auto allocation starts at hall center", func(t *testing.T) {
		t.Parallel()
		movies := &fakeMovieStore{movies: catalogMovies()}
		ledger := &fakeBookingStore{}
		h := NewBookingHandler(movies, ledger)

		c, rec := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":3,"date":"2026-09-01","time":"19:00"}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		var resp createResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Seats) != 1 || resp.Seats[0] != 25 {
			t.Errorf("seats = %v, want [25]", resp.Seats)
		}
		if resp.Total != 300 {
			t.Errorf("total = %d, want 300", resp.Total)
		}
	})

	t.Run("auto allocation skips seats already booked", func(t *testing.T) {
		t.Parallel()
		movies := &fakeMovieStore{movies: catalogMovies()}
		ledger := &fakeBookingStore{}
		h := NewBookingHandler(movies, ledger)

		seed, _ := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":1,"date":"2026-09-01","time":"19:00","seats":[25]}`)
		if err := h.CreateBooking(seed); err != nil {
			t.Fatalf("seed booking: %v", err)
		}

		c, rec := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":1,"date":"2026-09-01","time":"19:00","num_seats":1}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		var resp createResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Seats) != 1 || resp.Seats[0] != 24 {
			t.Errorf("seats = %v, want [24]", resp.Seats)
		}
	})

	t.Run("unknown movie is 404", func(t *testing.T) {
		t.Parallel()
		h := NewBookingHandler(&fakeMovieStore{movies: catalogMovies()}, &fakeBookingStore{})
		c, rec := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":99,"date":"2026-09-01","time":"19:00","seats":[1]}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("duplicate seat in request is 400", func(t *testing.T) {
		t.Parallel()
		h := NewBookingHandler(&fakeMovieStore{movies: catalogMovies()}, &fakeBookingStore{})
		c, rec := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":1,"date":"2026-09-01","time":"19:00","seats":[7,7]}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing showing fields are 400", func(t *testing.T) {
		t.Parallel()
		h := NewBookingHandler(&fakeMovieStore{movies: catalogMovies()}, &fakeBookingStore{})
		c, rec := newTestCtx(http.MethodPost, "/v1/bookings", `{"movie_id":1}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("confirmation event is published", func(t *testing.T) {
		t.Parallel()
		h := NewBookingHandler(&fakeMovieStore{movies: catalogMovies()}, &fakeBookingStore{})
		got := make(chan queue.BookingConfirmedEvent, 1)
		h.Publish = func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
			got <- ev
			return nil
		}

		c, _ := newTestCtx(http.MethodPost, "/v1/bookings",
			`{"movie_id":2,"date":"2026-09-01","time":"21:00","seats":[10,11],"email":"x@y.com"}`)
		if err := h.CreateBooking(c); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		select {
		case ev := <-got:
			if ev.MovieTitle != "The Dark Knight" || ev.Total != 500 {
				t.Errorf("event = %+v", ev)
			}
			if ev.Reference == "" || ev.ConfirmedAt == "" {
				t.Errorf("event missing reference or timestamp: %+v", ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no confirmation event published")
		}
	})
}

type listResp struct {
	Bookings  []model.Booking `json:"bookings"`
	Analytics struct {
		SeatsPerMovie   map[string]int   `json:"total_bookings_per_movie"`
		RevenuePerMovie map[string]int64 `json:"total_revenue_per_movie"`
	} `json:"analytics"`
}

func TestListBookings(t *testing.T) {
	t.Parallel()

	ledgerRows := []model.Booking{
		{ID: 1, MovieID: 1, MovieTitle: "Inception", Seats: []int{1, 2}, Total: 500, Status: model.StatusConfirmed, Email: "ann@example.com", Phone: "111"},
		{ID: 2, MovieID: 1, MovieTitle: "Inception", Seats: []int{3}, Total: 250, Status: model.StatusCancelled, Email: "bob@example.com", Phone: "222"},
		{ID: 3, MovieID: 3, MovieTitle: "Interstellar", Seats: []int{4}, Total: 300, Status: model.StatusConfirmed, Email: "cat@example.com", Phone: "333"},
	}

	t.Run("analytics count cancelled bookings", func(t *testing.T) {
		t.Parallel()
		ledger := &fakeBookingStore{bookings: ledgerRows, nextID: 3}
		h := NewBookingHandler(&fakeMovieStore{}, ledger)

		c, rec := newTestCtx(http.MethodGet, "/v1/bookings", "")
		if err := h.ListBookings(c); err != nil {
			t.Fatalf("ListBookings: %v", err)
		}
		var resp listResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Bookings) != 3 {
			t.Fatalf("got %d bookings, want 3", len(resp.Bookings))
		}
		if got := resp.Analytics.SeatsPerMovie["Inception"]; got != 3 {
			t.Errorf("Inception seats = %d, want 3", got)
		}
		if got := resp.Analytics.RevenuePerMovie["Inception"]; got != 750 {
			t.Errorf("Inception revenue = %d, want 750", got)
		}
		if got := resp.Analytics.RevenuePerMovie["Interstellar"]; got != 300 {
			t.Errorf("Interstellar revenue = %d, want 300", got)
		}
	})

	t.Run("search narrows rows and aggregates follow", func(t *testing.T) {
		t.Parallel()
		ledger := &fakeBookingStore{bookings: ledgerRows, nextID: 3}
		h := NewBookingHandler(&fakeMovieStore{}, ledger)

		c, rec := newTestCtx(http.MethodGet, "/v1/bookings?search=ann", "")
		if err := h.ListBookings(c); err != nil {
			t.Fatalf("ListBookings: %v", err)
		}
		if ledger.lastSearch != "ann" {
			t.Errorf("search passed to store = %q, want %q", ledger.lastSearch, "ann")
		}
		var resp listResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Bookings) != 1 {
			t.Fatalf("got %d bookings, want 1", len(resp.Bookings))
		}
		if got := resp.Analytics.RevenuePerMovie["Inception"]; got != 500 {
			t.Errorf("Inception revenue = %d, want 500", got)
		}
	})
}

func TestCancelBooking(t *testing.T) {
	t.Parallel()

	newHandler := func() (*BookingHandler, *fakeBookingStore) {
		ledger := &fakeBookingStore{
			bookings: []model.Booking{
				{ID: 1, MovieTitle: "Inception", Status: model.StatusConfirmed},
				{ID: 2, MovieTitle: "Inception", Status: model.StatusCancelled},
			},
			nextID: 2,
		}
		return NewBookingHandler(&fakeMovieStore{}, ledger), ledger
	}

	cancelCtx := func(id string) (echo.Context, *httptest.ResponseRecorder) {
		c, rec := newTestCtx(http.MethodPost, "/v1/bookings/"+id+"/cancel", "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	t.Run("unknown id is 404", func(t *testing.T) {
		t.Parallel()
		h, _ := newHandler()
		c, rec := cancelCtx("99")
		if err := h.CancelBooking(c); err != nil {
			t.Fatalf("CancelBooking: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("confirmed flips to cancelled", func(t *testing.T) {
		t.Parallel()
		h, ledger := newHandler()
		c, rec := cancelCtx("1")
		if err := h.CancelBooking(c); err != nil {
			t.Fatalf("CancelBooking: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		got, err := ledger.GetByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status != model.StatusCancelled {
			t.Errorf("status = %q, want %q", got.Status, model.StatusCancelled)
		}
	})

	t.Run("already cancelled is an idempotent success", func(t *testing.T) {
		t.Parallel()
		h, ledger := newHandler()
		c, rec := cancelCtx("2")
		if err := h.CancelBooking(c); err != nil {
			t.Fatalf("CancelBooking: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if ledger.statusUpdates != 0 {
			t.Errorf("UpdateStatus called %d times, want 0", ledger.statusUpdates)
		}
	})

	t.Run("row survives cancellation", func(t *testing.T) {
		t.Parallel()
		h, ledger := newHandler()
		c, _ := cancelCtx("1")
		if err := h.CancelBooking(c); err != nil {
			t.Fatalf("CancelBooking: %v", err)
		}
		if n, _ := ledger.Count(context.Background()); n != 2 {
			t.Errorf("ledger has %d rows after cancel, want 2", n)
		}
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		t.Parallel()
		h, _ := newHandler()
		c, rec := cancelCtx("abc")
		if err := h.CancelBooking(c); err != nil {
			t.Fatalf("CancelBooking: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
