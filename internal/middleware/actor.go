// Package middleware provides HTTP middleware for the pressroom server.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"pressroom/internal/auth"
	"pressroom/internal/models"
	"pressroom/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// actorKey is the context key for the resolved actor.
	actorKey contextKey = "actor"
)

// LoadActor resolves the bearer token from the Authorization header into
// an actor and stores it in the request context. It never rejects a
// request by itself: a missing, unknown, or expired token simply leaves
// the caller anonymous, since guests may perform published-only reads.
func LoadActor(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			data, err := store.Get(r.Context(), token)
			if err != nil {
				// Treat a session backend failure as anonymous rather
				// than failing every request.
				slog.Error("session lookup failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				actor := &auth.Actor{ID: data.UserID, Role: models.Role(data.Role)}
				ctx := context.WithValue(r.Context(), actorKey, actor)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithActor returns a context carrying the given actor, as LoadActor
// would produce for a valid token.
func WithActor(ctx context.Context, actor *auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromCtx extracts the actor from the request context. Returns nil
// for anonymous callers.
func ActorFromCtx(ctx context.Context) *auth.Actor {
	actor, _ := ctx.Value(actorKey).(*auth.Actor)
	return actor
}

// BearerToken extracts the token from an "Authorization: Bearer x" header.
// Returns "" when the header is missing or uses a different scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
