package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"recipebox/internal/logger"
)

// HeaderUserID carries the acting user's id.
const HeaderUserID = "X-User-ID"

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type contextKey string

const userIDKey contextKey = "user_id"

// RequireUser rejects requests without an X-User-ID header and stores the id
// in the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			respondError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID returns a context carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id stored by RequireUser.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func slogFor(r *http.Request) *slog.Logger {
	log := logger.FromContext(r.Context())
	if id := UserIDFromContext(r.Context()); id != "" {
		log = log.With("user_id", id)
	}
	return log
}
