package catalog

import "github.com/showtix/movie-booking/internal/model"

// FindByID locates the movie with the given id using binary search over a
// closed index range. The caller must supply movies already ordered
// ascending by id; the function does not sort and silently yields wrong
// results when the precondition is violated. The booking flow always
// re-fetches the catalog ordered by id before calling this. The second
// return value is false when no movie matches.
func FindByID(movies []model.Movie, id int64) (model.Movie, bool) {
	left, right := 0, len(movies)-1
	for left <= right {
		mid := (left + right) / 2
		switch {
		case movies[mid].ID == id:
			return movies[mid], true
		case movies[mid].ID < id:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return model.Movie{}, false
}
