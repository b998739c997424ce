package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/showtix/movie-booking/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec, c
}

func TestJWTAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid token passes and sets identity", func(t *testing.T) {
		t.Parallel()
		tok, err := utils.NewAccessToken(testSecret, 7, "ADMIN", 5)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		rec, c := runJWT(t, "Bearer "+tok.Token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		if role, _ := c.Get("role").(string); role != "ADMIN" {
			t.Errorf("role = %v, want ADMIN", c.Get("role"))
		}
		if c.Get("user_id") == nil {
			t.Error("user_id not set in context")
		}
	})

	t.Run("missing header is 401", func(t *testing.T) {
		t.Parallel()
		rec, _ := runJWT(t, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		t.Parallel()
		rec, _ := runJWT(t, "Bearer not.a.jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("token signed with another secret is 401", func(t *testing.T) {
		t.Parallel()
		tok, err := utils.NewAccessToken("other-secret", 7, "USER", 5)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		rec, _ := runJWT(t, "Bearer "+tok.Token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	run := func(role interface{}, allowed ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		handler := RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("middleware: %v", err)
		}
		return rec
	}

	t.Run("allowed role passes", func(t *testing.T) {
		t.Parallel()
		if rec := run("USER", "USER", "ADMIN"); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("role outside the set is 403", func(t *testing.T) {
		t.Parallel()
		if rec := run("USER", "ADMIN"); rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("missing role is 403", func(t *testing.T) {
		t.Parallel()
		if rec := run(nil, "USER"); rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}
