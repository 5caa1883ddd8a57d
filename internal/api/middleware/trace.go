// Package middleware holds HTTP middleware shared by every service router.
package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/clinic-api/internal/api/shared"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
)

// TraceHeader carries the trace ID back to the caller.
const TraceHeader = "X-Trace-ID"

// NewTraceMiddleware returns middleware that gives each request a trace ID and
// a request-scoped logger.
//
// The trace ID reuses chi's request ID when RequestID ran earlier in the
// chain, so access logs and error bodies agree. Otherwise a new one is made.
// The logger derived from base carries trace_id, method and path and is
// stored with logger.WithLogger for handlers and stores to pick up.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				ctx = shared.WithTraceID(ctx, reqID)
			} else {
				ctx = shared.SetTraceID(ctx)
			}
			traceID := shared.GetTraceID(ctx)

			log := base.With(
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started", slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(TraceHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
