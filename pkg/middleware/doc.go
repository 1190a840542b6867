// Package middleware provides HTTP middleware for the session server.
//
// Prometheus counts requests and observes their latency by route pattern,
// method and status code. OpenTelemetry starts one server span per request
// and carries it on the request context, so spans recorded while patching a
// session become its children.
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("vdomkit")))
//
// Both read the route pattern from chi after the handler has run; requests
// that match no route are labelled "unmatched".
package middleware
