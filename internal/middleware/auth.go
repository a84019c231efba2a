package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/metrics"
	"github.com/fintrack/fintrack/internal/model"
)

// TokenVerifier verifies a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Identity, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  TokenVerifier
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates requests via bearer token.
// It extracts the token from the Authorization header, verifies it, and
// injects the resolved identity into the request context. Every protected
// handler receives the identity already resolved and must not re-derive it.
//
// Expired tokens are rejected with a distinct reason so clients know to
// re-login; every other failure reads "Invalid token".
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected("missing")
				writeAuthError(w, "Invalid token")
				return
			}

			ident, err := cfg.Tokens.Verify(token)
			if err != nil {
				reason := "malformed"
				message := "Invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired"
					message = "Token has expired"
				}

				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected(reason)
				writeAuthError(w, message)
				return
			}

			authCtx := &model.AuthContext{UserID: ident.UserID, TokenID: ident.TokenID}

			cfg.Logger.Debug("authentication successful",
				slog.Int64("user_id", ident.UserID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// writeAuthError writes a 401 Unauthorized response.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = fmt.Fprintf(w, `{"error":{"code":"UNAUTHORIZED","message":"%s"}}`, message)
}
