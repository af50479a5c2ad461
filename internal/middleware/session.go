package middleware

import (
	"context"
	"net/http"

	"github.com/aidar/task-manager-project/internal/service"
)

// SessionCookieName это имя cookie с подписанным сессионным токеном
const SessionCookieName = "session"

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// UserIDKey ключ контекста для ID пользователя
	UserIDKey ContextKey = "user_id"
	// UsernameKey ключ контекста для имени пользователя
	UsernameKey ContextKey = "username"
)

// resolveSession извлекает и валидирует сессионный токен из cookie
func resolveSession(r *http.Request, authService *service.AuthService) (*service.SessionClaims, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}
	return authService.ValidateSession(cookie.Value)
}

// withClaims кладет данные сессии в контекст запроса
func withClaims(r *http.Request, claims *service.SessionClaims) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return r.WithContext(ctx)
}

// PageAuthMiddleware создает middleware для HTML страниц:
// без валидной сессии запрос уводится на страницу входа
func PageAuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := resolveSession(r, authService)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

// APIAuthMiddleware создает middleware для JSON эндпоинтов:
// без валидной сессии возвращается 401
func APIAuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := resolveSession(r, authService)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"missing or invalid session"}}`))
				return
			}

			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUsernameFromContext извлекает имя пользователя из контекста
func GetUsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}
