package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"taskflow-service/adapters/auth"
	"taskflow-service/core"
	"taskflow-service/pkg/res"
)

type ctxKey int

const claimsKey ctxKey = iota

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (auth.Claims, error)
}

func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}

type Middleware func(http.Handler) http.Handler

func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// decoded claims to the request context.
func RequireAuth(parser TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				res.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := parser.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				res.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireSelf only lets the authenticated user act on its own record.
// Must run after RequireAuth.
func RequireSelf() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				res.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}

			id, err := core.ParseID(r.PathValue("id"))
			if err != nil {
				res.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			if id != claims.UserID {
				res.Error(w, "you can only act on your own user", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireExists validates the path id and loads the record before the main
// handler runs, short-circuiting with 404 when it is absent.
func RequireExists(log *slog.Logger, timeout time.Duration, load func(context.Context, int64) error) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := core.ParseID(r.PathValue("id"))
			if err != nil {
				res.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			if err := load(ctx, id); err != nil {
				WriteErr(log, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
