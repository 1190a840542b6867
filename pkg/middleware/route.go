package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Unmatched is the route label for requests no route matched.
const Unmatched = "unmatched"

// routePattern returns the chi route pattern r was served by.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return Unmatched
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return Unmatched
}

// statusCode maps a recorded status to its label. A handler that never wrote
// a header was answered with 200 by net/http.
func statusCode(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}

func statusLabel(status int) string {
	return strconv.Itoa(statusCode(status))
}
