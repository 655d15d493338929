package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sahanr/mangala/internal/service/account"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth validates the Bearer token on each request and stores the resolved
// user id on the request context. Requests without a valid identity are
// rejected with 401 before reaching any handler.
func Auth(accounts *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			userID, err := accounts.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id from the request context.
// Returns 0 when the request was not authenticated.
func UserID(ctx context.Context) uint64 {
	userID, _ := ctx.Value(userIDKey).(uint64)
	return userID
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "authorization required"})
}
