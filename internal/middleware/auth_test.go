package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/metrics"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// issueExpiredToken signs a token whose validity window already closed.
func issueExpiredToken(t *testing.T, secret string, userID int64) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Add(-2 * time.Hour).Unix(),
		"exp":     now.Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}
	return signed
}

func newAuthHandler(t *testing.T, tokens *auth.TokenService, recorder metrics.Recorder) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCtx := auth.AuthFromContext(r.Context())
		if authCtx == nil {
			t.Error("auth context missing downstream of the middleware")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":  authCtx.UserID,
			"token_id": authCtx.TokenID,
		})
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Auth(AuthConfig{Logger: logger, Tokens: tokens, Metrics: recorder})(next)
}

func authErrorMessage(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if payload.Error.Code != "UNAUTHORIZED" {
		t.Errorf("error code = %q, want UNAUTHORIZED", payload.Error.Code)
	}
	return payload.Error.Message
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	handler := newAuthHandler(t, tokens, nil)

	token, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		UserID  int64  `json:"user_id"`
		TokenID string `json:"token_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.UserID != 42 {
		t.Errorf("context user_id = %d, want 42", body.UserID)
	}
	if body.TokenID == "" {
		t.Error("context token_id is empty, want the verified jti")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	handler := newAuthHandler(t, tokens, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := authErrorMessage(t, rec.Body); msg != "Invalid token" {
		t.Errorf("message = %q, want %q", msg, "Invalid token")
	}
}

func TestAuth_NonBearerScheme(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	handler := newAuthHandler(t, tokens, nil)

	token, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := authErrorMessage(t, rec.Body); msg != "Invalid token" {
		t.Errorf("message = %q, want %q", msg, "Invalid token")
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	recorder := metrics.NewInMemory()
	handler := newAuthHandler(t, tokens, recorder)

	token := issueExpiredToken(t, testSecret, 42)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := authErrorMessage(t, rec.Body); msg != "Token has expired" {
		t.Errorf("message = %q, want %q", msg, "Token has expired")
	}
	if got := recorder.Snapshot().AuthRejected["expired"]; got != 1 {
		t.Errorf("expired rejections = %d, want 1", got)
	}
}

func TestAuth_MalformedToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	handler := newAuthHandler(t, tokens, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := authErrorMessage(t, rec.Body); msg != "Invalid token" {
		t.Errorf("message = %q, want %q", msg, "Invalid token")
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	t.Parallel()

	other := auth.NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	handler := newAuthHandler(t, tokens, nil)

	token, err := other.Issue(42)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := authErrorMessage(t, rec.Body); msg != "Invalid token" {
		t.Errorf("message = %q, want %q", msg, "Invalid token")
	}
}
