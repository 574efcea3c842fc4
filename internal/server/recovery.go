package server

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// recoveryMiddleware converts handler panics into a generic 500 response. The
// panic value and stack are logged server-side only; the client never sees
// internal detail.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if requestLogger := loggerWithRequestContext(r.Context(), logger); requestLogger != nil {
				requestLogger.Error("handler panic",
					"panic", rec,
					"method", r.Method,
					"url", r.URL.RequestURI(),
					"stack", string(debug.Stack()))
			}
			writeMiddlewareError(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}
