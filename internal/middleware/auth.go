package middleware

import (
	"context"
	"net/http"

	"github.com/akarpov/minesweeper-ai/internal/auth"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth parses the player cookie pair and, when valid, attaches the
// claims to the request context. Invalid or expired cookies are cleared
// and the request proceeds anonymously.
func Auth(jwt *auth.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ParseCookies(r)
			if err != nil {
				jwt.ClearCookies(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
