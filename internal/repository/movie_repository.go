package repository

import (
	"context"
	"database/sql"

	"github.com/showtix/movie-booking/internal/model"
)

// MovieRepo manages persistence for the movie catalog. Movies are
// write-once rows: they are inserted at seeding time or by an admin and
// never updated or deleted afterwards.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// ListAll returns every movie in primary-key fetch order. Callers that
// need a different ordering apply it in memory; callers that need the
// binary-search precondition use ListOrderedByID instead.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, genre, duration, price FROM movies`
	return r.list(ctx, q)
}

// ListOrderedByID returns every movie ordered ascending by id. The
// booking flow calls this before the binary-search lookup, which requires
// an id-ordered input.
func (r *MovieRepo) ListOrderedByID(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, genre, duration, price FROM movies ORDER BY id`
	return r.list(ctx, q)
}

func (r *MovieRepo) list(ctx context.Context, q string) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Genre, &m.Duration, &m.Price); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// Create inserts a movie and assigns the generated id back onto the
// struct. When the caller supplies a positive id it is inserted verbatim
// (seeding uses fixed ids); otherwise the database assigns the next one.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	if m.ID > 0 {
		const q = `INSERT INTO movies (id, title, genre, duration, price) VALUES (?, ?, ?, ?, ?)`
		_, err := r.db.ExecContext(ctx, q, m.ID, m.Title, m.Genre, m.Duration, m.Price)
		return err
	}
	const q = `INSERT INTO movies (title, genre, duration, price) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre, m.Duration, m.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// Count returns the number of rows in the movies table.
func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n)
	return n, err
}
