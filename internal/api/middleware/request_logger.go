package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/logging"
)

// RequestLogger puts a request-scoped logger on the context, logs one line
// per request and turns panics into an internal error envelope. It expects
// chi's RequestID to have run.
func RequestLogger(base *slog.Logger, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := chiMiddleware.GetReqID(r.Context())

			reqLogger := base.With(
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)

			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			wrapped := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					reqLogger.Error("panic recovered", "panic", rec)
					if wrapped.Status() == 0 {
						writeError(wrapped, r, domain.Internal("Something went wrong", fmt.Errorf("panic: %v", rec)))
					}
				}
				status := wrapped.Status()
				if status == 0 {
					status = http.StatusOK
				}
				reqLogger.Info("request completed",
					slog.Int("status", status),
					slog.Int("bytes", wrapped.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
