// Package middleware provides HTTP middleware components.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"gqlblog/internal/auth"
)

type Middleware func(http.Handler) http.Handler

const bearerPrefix = "Bearer "

// TokenVerifier resolves a bearer token to an identity, or nil.
type TokenVerifier interface {
	Verify(token string) *auth.Identity
}

// Auth attaches the identity of a valid bearer token to the request context.
// It never rejects a request; each operation decides what it requires.
func Auth(verifier TokenVerifier, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity := verifier.Verify(token)
			if identity == nil {
				logger.Debug("bearer token rejected",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Only the exact form counts. The scheme is case sensitive and
// the token may not contain whitespace.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}

	token := header[len(bearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return ""
	}
	return token
}

// Chain wraps h so that the first middleware runs innermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
