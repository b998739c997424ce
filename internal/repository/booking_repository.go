package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/showtix/movie-booking/internal/model"
)

// BookingRepo provides CRUD operations for the booking ledger. Seat
// numbers for a booking are stored as a comma-separated list in a single
// column; a showing has no table of its own and exists only as the
// (movie_id, date, time) grouping used when querying prior bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, movie_id, movie_title, date, time, seats, name, email, phone, total, status, reference, created_at`

// encodeSeats renders seat numbers as the CSV stored in bookings.seats.
func encodeSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

// decodeSeats parses the CSV seat column. Blank entries are skipped so a
// booking with no assigned seats round-trips as an empty list.
func decodeSeats(csv string) []int {
	seats := make([]int, 0)
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := strconv.Atoi(p); err == nil {
			seats = append(seats, n)
		}
	}
	return seats
}

// Create appends a booking to the ledger and assigns the generated id
// back onto the struct. Status and reference must already be set by the
// caller.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (movie_id, movie_title, date, time, seats, name, email, phone, total, status, reference)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.MovieID, b.MovieTitle, b.Date, b.Time, encodeSeats(b.Seats),
		b.Name, b.Email, b.Phone, b.Total, b.Status, b.Reference)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	// Read back created_at so the caller sees the stored row.
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// List returns bookings, optionally narrowed to rows whose email or phone
// contains the search term (case-insensitive for email). Rows come back in
// insertion order; no status filter is applied, so cancelled bookings are
// included.
func (r *BookingRepo) List(ctx context.Context, search string) ([]model.Booking, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if search = strings.TrimSpace(search); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		const q = `SELECT ` + bookingColumns + ` FROM bookings
		           WHERE LOWER(email) LIKE ? OR phone LIKE ?`
		rows, err = r.db.QueryContext(ctx, q, needle, needle)
	} else {
		const q = `SELECT ` + bookingColumns + ` FROM bookings`
		rows, err = r.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetByID fetches a single booking. It returns ErrBookingNotFound when no
// row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	return b, nil
}

// UpdateStatus sets the status of a booking. It returns
// ErrBookingNotFound when the id does not exist. Updating to the current
// status is not an error; the ledger treats it as a no-op.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish missing rows from same-value updates.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return err
		}
	}
	return nil
}

// SeatsForShowing returns every seat number recorded against the showing
// identified by (movieID, date, time), across all bookings regardless of
// status. Cancelled bookings keep their seats out of the pool; the seat
// allocator relies on that.
func (r *BookingRepo) SeatsForShowing(ctx context.Context, movieID int64, date, showTime string) ([]int, error) {
	const q = `SELECT seats FROM bookings WHERE movie_id = ? AND date = ? AND time = ?`
	rows, err := r.db.QueryContext(ctx, q, movieID, date, showTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var booked []int
	for rows.Next() {
		var csv string
		if err := rows.Scan(&csv); err != nil {
			return nil, err
		}
		booked = append(booked, decodeSeats(csv)...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return booked, nil
}

// Count returns the number of rows in the bookings table.
func (r *BookingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (model.Booking, error) {
	var (
		b   model.Booking
		csv string
	)
	err := s.Scan(&b.ID, &b.MovieID, &b.MovieTitle, &b.Date, &b.Time, &csv,
		&b.Name, &b.Email, &b.Phone, &b.Total, &b.Status, &b.Reference, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.Seats = decodeSeats(csv)
	return b, nil
}
