// Copyright (c) 2026 PalText. All rights reserved.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/paltextai/backend/internal/platform/metrics"
)

// Metrics records Prometheus metrics for every HTTP request:
// total count by method/path/status, a latency histogram, and an
// in-flight gauge.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Skip the metrics endpoint to avoid self-referential series.
			if request.URL.Path == "/metrics" {
				next.ServeHTTP(writer, request)
				return
			}

			start := time.Now()

			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)
			next.ServeHTTP(wrapped, request)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.Status())

			// Use the registered route pattern rather than the raw path so
			// /api/blog/posts/{slug} stays a single series per route.
			path := "unmatched"
			if routeCtx := chi.RouteContext(request.Context()); routeCtx != nil {
				if pattern := routeCtx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			metrics.HTTPRequestsTotal.WithLabelValues(request.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(request.Method, path).Observe(duration)
		})
	}
}
