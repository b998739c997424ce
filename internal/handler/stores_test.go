package handler

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/model"
	"github.com/showtix/movie-booking/internal/repository"
)

// fakeMovieStore keeps movies in memory and satisfies MovieStore.
type fakeMovieStore struct {
	movies []model.Movie
	nextID int64
}

func (f *fakeMovieStore) ListAll(ctx context.Context) ([]model.Movie, error) {
	out := make([]model.Movie, len(f.movies))
	copy(out, f.movies)
	return out, nil
}

func (f *fakeMovieStore) ListOrderedByID(ctx context.Context) ([]model.Movie, error) {
	out, _ := f.ListAll(ctx)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMovieStore) Create(ctx context.Context, m *model.Movie) error {
	if m.ID == 0 {
		f.nextID++
		m.ID = f.nextID
	}
	f.movies = append(f.movies, *m)
	return nil
}

func (f *fakeMovieStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.movies)), nil
}

// fakeBookingStore keeps the booking ledger in memory and satisfies
// BookingStore. lastSearch records what List was called with.
type fakeBookingStore struct {
	bookings      []model.Booking
	nextID        int64
	lastSearch    string
	statusUpdates int
}

func (f *fakeBookingStore) Create(ctx context.Context, b *model.Booking) error {
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingStore) List(ctx context.Context, search string) ([]model.Booking, error) {
	f.lastSearch = search
	var out []model.Booking
	for _, b := range f.bookings {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Email), strings.ToLower(search)) &&
			!strings.Contains(b.Phone, search) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id int64) (model.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, repository.ErrBookingNotFound
}

func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	f.statusUpdates++
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return repository.ErrBookingNotFound
}

func (f *fakeBookingStore) SeatsForShowing(ctx context.Context, movieID int64, date, showTime string) ([]int, error) {
	var seats []int
	for _, b := range f.bookings {
		if b.MovieID == movieID && b.Date == date && b.Time == showTime {
			seats = append(seats, b.Seats...)
		}
	}
	return seats, nil
}

func (f *fakeBookingStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

// fakeUserStore satisfies UserStore for the stats endpoint.
type fakeUserStore struct{ users int64 }

func (f *fakeUserStore) Count(ctx context.Context) (int64, error) { return f.users, nil }

// newTestCtx builds an echo context for a JSON request.
func newTestCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func catalogMovies() []model.Movie {
	return []model.Movie{
		{ID: 1, Title: "Inception", Genre: "Sci-Fi", Duration: "2h28m", Price: 250},
		{ID: 2, Title: "The Dark Knight", Genre: "Action", Duration: "2h32m", Price: 250},
		{ID: 3, Title: "Interstellar", Genre: "Sci-Fi", Duration: "2h49m", Price: 300},
	}
}
