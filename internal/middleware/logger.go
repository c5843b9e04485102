package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/marcos/task-tracker-project/pkg/logger"
)

// ZapLogger создает middleware, которое кладет в контекст логгер запроса
// с request_id и пишет access-лог по завершении обработки.
func ZapLogger(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chimiddleware.GetReqID(r.Context())
			reqLogger := l.With(zap.String("request_id", requestID))

			ctx := logger.WithLogger(r.Context(), reqLogger)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.String("remote_ip", r.RemoteAddr),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("bytes_out", ww.BytesWritten()),
			)
		})
	}
}
