// Package middleware содержит middleware HTTP-слоя
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/api/handlers"
)

type contextKey string

// UserIDKey ключ контекста с ID профиля аутентифицированного пользователя
const UserIDKey contextKey = "userID"

// HeaderUserID заголовок с ID профиля, проставляется API-шлюзом
const HeaderUserID = "X-User-ID"

// Auth requires a valid X-User-ID header and stores the profile id in the
// request context. Authorization itself is out of scope: the gateway has
// already authenticated the caller.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "cabeçalho X-User-ID ausente")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, "cabeçalho X-User-ID inválido")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID извлекает ID профиля из контекста запроса
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
