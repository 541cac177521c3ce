// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"elvcatalog/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// tokenKey carries the raw token so logout can revoke it.
	tokenKey contextKey = "session_token"
)

// SessionVerifier resolves a token to its session. It returns nil when the
// token is unknown or expired.
type SessionVerifier interface {
	Lookup(ctx context.Context, token string) (*session.Data, error)
}

// VerifyAuth guards the admin API. Requests without a valid token get 401,
// signed-in accounts without the admin role get 403. Otherwise the session
// is stored in the request context for SessionFromCtx.
func VerifyAuth(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			data, err := verifier.Lookup(r.Context(), token)
			if err != nil {
				slog.Error("session lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if data == nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if data.Role != "admin" {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, data)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if the request did not pass VerifyAuth.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// TokenFromCtx returns the token VerifyAuth accepted, or "".
func TokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
