package api

import (
	"context"
	"net/http"

	"github.com/starlove/together/internal/api/respond"
	"github.com/starlove/together/internal/auth"
	"github.com/starlove/together/internal/model"
)

type contextKey struct{}

var sessionKey contextKey

// SessionMiddleware resolves the request's API key to a session and stores
// it in the request context. Requests without a valid key get 401.
func SessionMiddleware(authorizer auth.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := auth.ExtractAPIKey(r)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			session, err := authorizer.Authorize(r.Context(), key)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, *session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session resolved by SessionMiddleware.
func SessionFrom(ctx context.Context) (model.Session, bool) {
	s, ok := ctx.Value(sessionKey).(model.Session)
	return s, ok
}
