package server

import (
	"errors"
	"net/http"

	"tokengate/internal/auth"
	"tokengate/internal/observability/metrics"
)

// Client-facing messages for each authentication failure. The bodies are part
// of the service contract and must not drift.
const (
	msgMissingHeader   = "Missing Authorization header"
	msgMalformedHeader = "Invalid Authorization header format. Expected: Bearer <token>"
	msgInvalidToken    = "Invalid token"
)

// authMiddleware guards a route with bearer token verification. Denials
// short-circuit the pipeline with the matching status and JSON body; accepted
// requests are forwarded untouched.
func authMiddleware(verifier *auth.Verifier, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if recorder == nil {
		recorder = metrics.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := verifier.Check(r.Header.Get("Authorization"))
		switch {
		case err == nil:
			recorder.ObserveAuthDecision(metrics.AuthAllowed)
			next.ServeHTTP(w, r)
		case errors.Is(err, auth.ErrMissingHeader):
			recorder.ObserveAuthDecision(metrics.AuthMissingHeader)
			writeMiddlewareError(w, http.StatusUnauthorized, msgMissingHeader)
		case errors.Is(err, auth.ErrMalformedHeader):
			recorder.ObserveAuthDecision(metrics.AuthMalformedHeader)
			writeMiddlewareError(w, http.StatusUnauthorized, msgMalformedHeader)
		default:
			recorder.ObserveAuthDecision(metrics.AuthInvalidToken)
			writeMiddlewareError(w, http.StatusForbidden, msgInvalidToken)
		}
	})
}
