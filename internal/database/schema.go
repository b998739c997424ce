package database

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/showtix/movie-booking/internal/model"
	"github.com/showtix/movie-booking/internal/utils"
)

// Statements run at startup. CREATE TABLE IF NOT EXISTS keeps restarts
// idempotent without a separate migration tool.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id       BIGINT PRIMARY KEY AUTO_INCREMENT,
		title    VARCHAR(255) NOT NULL,
		genre    VARCHAR(100) NOT NULL DEFAULT '',
		duration VARCHAR(50)  NOT NULL DEFAULT '',
		price    BIGINT       NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id          BIGINT PRIMARY KEY AUTO_INCREMENT,
		movie_id    BIGINT       NOT NULL,
		movie_title VARCHAR(255) NOT NULL,
		date        VARCHAR(50)  NOT NULL,
		time        VARCHAR(50)  NOT NULL,
		seats       VARCHAR(255) NOT NULL DEFAULT '',
		name        VARCHAR(255) NOT NULL DEFAULT '',
		email       VARCHAR(255) NOT NULL DEFAULT '',
		phone       VARCHAR(50)  NOT NULL DEFAULT '',
		total       BIGINT       NOT NULL,
		status      VARCHAR(20)  NOT NULL,
		reference   CHAR(36)     NOT NULL,
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_showing (movie_id, date, time)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT PRIMARY KEY AUTO_INCREMENT,
		username      VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(20)  NOT NULL,
		created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT PRIMARY KEY AUTO_INCREMENT,
		user_id    BIGINT       NOT NULL,
		token_hash CHAR(64)     NOT NULL,
		expires_at DATETIME     NOT NULL,
		revoked_at DATETIME     NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash)
	)`,
}

// EnsureSchema creates the tables the service needs if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedMovies is the fixed catalog loaded once when the movies table is
// empty at startup.
var seedMovies = []model.Movie{
	{ID: 1, Title: "Inception", Genre: "Sci-Fi", Duration: "148 min", Price: 250},
	{ID: 2, Title: "The Dark Knight", Genre: "Action", Duration: "152 min", Price: 250},
	{ID: 3, Title: "Interstellar", Genre: "Sci-Fi", Duration: "169 min", Price: 300},
	{ID: 4, Title: "Avengers: Endgame", Genre: "Action", Duration: "181 min", Price: 300},
	{ID: 5, Title: "The Shawshank Redemption", Genre: "Drama", Duration: "142 min", Price: 200},
	{ID: 6, Title: "Pulp Fiction", Genre: "Crime", Duration: "154 min", Price: 200},
}

// Seed loads the fixed movie catalog when the movies table is empty and
// makes sure one admin account exists. Seed credentials come from
// ADMIN_USERNAME / ADMIN_PASSWORD; when unset a default admin/changeme
// account is created and a warning is logged.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		const q = `INSERT INTO movies (id, title, genre, duration, price) VALUES (?, ?, ?, ?, ?)`
		for _, m := range seedMovies {
			if _, err := db.ExecContext(ctx, q, m.ID, m.Title, m.Genre, m.Duration, m.Price); err != nil {
				return err
			}
		}
		log.Printf("seeded %d movies", len(seedMovies))
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Printf("ADMIN_PASSWORD not set, seeding admin %q with default password", username)
	}

	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=? LIMIT 1`, username).Scan(&exists)
	if err == nil {
		return nil // admin already present
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, hash, model.RoleAdmin)
	return err
}
