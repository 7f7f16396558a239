package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/authtoken"
)

type ctxKey string

const vendorIDKey ctxKey = "vendorID"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет JWT вендора из заголовка Authorization и кладет
// vendorID в контекст запроса
func Auth(jwtSecret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("Auth: missing Authorization header for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "требуется авторизация")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				logger.Warn("Auth: malformed Authorization header for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "некорректный заголовок Authorization")
				return
			}

			claims, err := authtoken.Parse(jwtSecret, tokenString)
			if err != nil {
				logger.Warn("Auth: invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "недействительный токен")
				return
			}

			ctx := context.WithValue(r.Context(), vendorIDKey, claims.VendorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VendorIDFromContext достает vendorID, положенный Auth middleware
func VendorIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(vendorIDKey).(int64)
	return id, ok
}
