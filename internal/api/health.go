// Copyright (c) 2026 PalText. All rights reserved.

package api

import (
	"net/http"
	"time"

	"github.com/paltextai/backend/internal/platform/postgres"
	"github.com/paltextai/backend/internal/platform/redis"
	"github.com/paltextai/backend/internal/platform/respond"
)

// handleHealth is the liveness probe. It never touches dependencies, so a
// struggling database cannot take the process out of rotation.
func (server *Server) handleHealth(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{
		"status":      "ok",
		"uptime":      time.Since(server.startedAt).Round(time.Second).String(),
		"environment": server.config.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReadiness reports whether the server can actually serve traffic by
// pinging each configured dependency.
func (server *Server) handleReadiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	checks := map[string]string{}
	healthy := true

	if err := postgres.Ping(ctx, server.pool); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if server.redis != nil {
		if err := redis.Ping(ctx, server.redis); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	respond.JSON(writer, status, map[string]any{
		"status": state,
		"checks": checks,
	})
}
