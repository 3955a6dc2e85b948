// Copyright (c) 2026 PalText. All rights reserved.

package sitemap

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paltextai/backend/internal/platform/middleware"
	"github.com/paltextai/backend/internal/platform/respond"
)

// Handler exposes the sitemap endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the sitemap router, mounted at /api/sitemap. Rendering is
// public; regeneration is admin only.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/xml", h.renderXML)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/generate", h.generate)
	})

	return router
}

// renderXML handles GET /xml.
func (h *Handler) renderXML(writer http.ResponseWriter, request *http.Request) {
	body, _, err := h.service.XML(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.XML(writer, http.StatusOK, body)
}

// generate handles POST /generate.
func (h *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	result, err := h.service.Generate(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message":    "Sitemap generated successfully",
		"postsCount": result.PostsCount,
		"path":       result.Path,
	})
}
