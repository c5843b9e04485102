package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// CallerKey ключ контекста для идентичности вызывающего
	CallerKey ContextKey = "caller"
)

// AuthMiddleware создает middleware для валидации JWT токенов.
// Идентичность вызывающего кладется в контекст; обработчики токен
// не разбирают.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"missing authorization header"}}`, http.StatusUnauthorized)
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid authorization header format"}}`, http.StatusUnauthorized)
				return
			}

			token := parts[1]

			// Валидируем токен
			claims, err := authService.ValidateToken(token)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			// Добавляем идентичность вызывающего в контекст
			ctx := context.WithValue(r.Context(), CallerKey, claims.Caller())

			// Вызываем следующий обработчик
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только администраторов. Используется для
// эндпоинтов, закрытых на уровне маршрута; проверки владения выполняет
// политика в сервисном слое.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetCallerFromContext(r.Context())
		if !ok {
			http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"unauthorized"}}`, http.StatusUnauthorized)
			return
		}

		if !caller.IsAdmin {
			http.Error(w, `{"error":{"code":"FORBIDDEN","message":"operation is not permitted"}}`, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetCallerFromContext извлекает идентичность вызывающего из контекста
func GetCallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(CallerKey).(domain.Caller)
	return caller, ok
}
