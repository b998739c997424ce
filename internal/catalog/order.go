// Package catalog implements the in-memory movie list operations used by
// the browse and booking flows: ordering the catalog by a chosen field and
// looking up a movie by id in an id-ordered list. Both operate on small
// slices fetched per request and never touch the database themselves.
package catalog

import (
	"strings"

	"github.com/showtix/movie-booking/internal/model"
)

// Fields accepted by OrderBy. Anything else leaves the catalog in fetch
// order and OrderBy must not be called.
const (
	FieldPrice    = "price"
	FieldTitle    = "title"
	FieldDuration = "duration"
)

// SortableField reports whether field is one of the recognized sort keys.
func SortableField(field string) bool {
	switch field {
	case FieldPrice, FieldTitle, FieldDuration:
		return true
	}
	return false
}

// OrderBy returns a new slice of movies ordered ascending by the given
// field. It partitions around the middle element into strictly-less, equal
// and strictly-greater groups, recurses on the outer groups and
// concatenates less + equal + greater. Records that compare equal on the
// field end up grouped together but their order relative to the input is
// not guaranteed. The input slice is never mutated. Price compares
// numerically; title and duration compare as raw strings.
func OrderBy(movies []model.Movie, field string) []model.Movie {
	if len(movies) <= 1 {
		out := make([]model.Movie, len(movies))
		copy(out, movies)
		return out
	}
	pivot := movies[len(movies)/2]
	var less, equal, greater []model.Movie
	for _, m := range movies {
		switch compareField(m, pivot, field) {
		case -1:
			less = append(less, m)
		case 0:
			equal = append(equal, m)
		default:
			greater = append(greater, m)
		}
	}
	out := OrderBy(less, field)
	out = append(out, equal...)
	return append(out, OrderBy(greater, field)...)
}

// compareField orders a against b on the given field, returning -1, 0 or 1.
func compareField(a, b model.Movie, field string) int {
	switch field {
	case FieldPrice:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	case FieldTitle:
		return strings.Compare(a.Title, b.Title)
	case FieldDuration:
		return strings.Compare(a.Duration, b.Duration)
	}
	return 0
}
