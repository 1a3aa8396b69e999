package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	"github.com/m04kA/SMC-SalonCheckout/pkg/bearer"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDHeader заголовок с ID клиента, который проставляет шлюз
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "требуется заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
)

// Auth требует X-User-ID и кладет ID клиента в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID клиента, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// Bearer переносит токен из Authorization в контекст, чтобы клиенты передали его дальше.
// Запрос без токена пропускается как есть.
func Bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearer.FromHeader(r.Header.Get("Authorization")); token != "" {
			r = r.WithContext(bearer.ContextWithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
