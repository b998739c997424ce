package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/catalog"
)

// CatalogHandler serves the movie catalog.
type CatalogHandler struct {
	Movies MovieStore
}

func NewCatalogHandler(movies MovieStore) *CatalogHandler {
	if movies == nil {
		panic("nil store passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: movies}
}

// ListMovies handles GET /v1/movies. An optional ?genre= narrows the list
// by case-insensitive genre equality, and ?sort_by=price|title|duration
// orders the result ascending on that field. Without a recognized sort
// field movies come back in primary-key fetch order.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	genre := strings.ToLower(strings.TrimSpace(c.QueryParam("genre")))
	sortBy := c.QueryParam("sort_by")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}

	if genre != "" {
		filtered := movies[:0:0]
		for _, m := range movies {
			if strings.ToLower(m.Genre) == genre {
				filtered = append(filtered, m)
			}
		}
		movies = filtered
	}

	if catalog.SortableField(sortBy) {
		movies = catalog.OrderBy(movies, sortBy)
	}

	return c.JSON(http.StatusOK, movies)
}
