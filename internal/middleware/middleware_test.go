package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TeeCanvas/TC-Backend/internal/middleware"
	"github.com/TeeCanvas/TC-Backend/internal/utils"
)

// mockDecoder implements middleware.TokenDecoder without any signing key.
type mockDecoder struct {
	identity utils.Identity
	err      error
}

func (m mockDecoder) DecodeToken(token string) (utils.Identity, error) {
	return m.identity, m.err
}

// callWithHeader wraps a simple 200-OK inner handler in the provided middleware,
// optionally setting the Authorization header, and returns the recorded response.
func callWithHeader(t *testing.T, mw func(http.Handler) http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mw := middleware.AuthMiddleware(mockDecoder{})

	rec := callWithHeader(t, mw, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	mw := middleware.AuthMiddleware(mockDecoder{})

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		rec := callWithHeader(t, mw, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddleware_DecoderError(t *testing.T) {
	mw := middleware.AuthMiddleware(mockDecoder{err: errors.New("token is expired")})

	rec := callWithHeader(t, mw, "Bearer some-expired-token")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid or expired token") {
		t.Errorf("expected body to contain %q, got: %q", "Invalid or expired token", body)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	const wantUserID = "test-user-123"
	const wantUsername = "testuser"

	decoder := mockDecoder{
		identity: utils.Identity{UserID: wantUserID, Username: wantUsername},
	}

	// inner handler reads and checks the identity from context
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "userID not in context", http.StatusInternalServerError)
			return
		}
		if gotUserID != wantUserID {
			http.Error(w, "wrong userID in context: "+gotUserID, http.StatusInternalServerError)
			return
		}
		gotUsername, ok := utils.GetUsernameFromContext(r.Context())
		if !ok || gotUsername != wantUsername {
			http.Error(w, "wrong username in context: "+gotUsername, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mw := middleware.AuthMiddleware(decoder)
	handler := mw(inner)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run for preflight requests")
	})

	handler := middleware.CORSMiddleware(inner)
	req := httptest.NewRequest(http.MethodOptions, "/generate-design", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}

func TestCORSMiddleware_UnknownOrigin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.CORSMiddleware(inner)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}
