// Copyright (c) 2026 PalText. All rights reserved.

package waitlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paltextai/backend/internal/platform/middleware"
	requestutil "github.com/paltextai/backend/internal/platform/request"
	"github.com/paltextai/backend/internal/platform/respond"
	"github.com/paltextai/backend/pkg/pagination"
)

// Handler exposes the waitlist endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the waitlist router, mounted at /api/waitlist. Join is
// public; the reporting endpoints are admin only.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/join", h.join)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Get("/stats", h.stats)
		admin.Get("/entries", h.entries)
	})

	return router
}

type joinRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// join handles POST /join.
func (h *Handler) join(writer http.ResponseWriter, request *http.Request) {
	var body joinRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := h.service.Join(request.Context(), body.Email, body.Source)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.AlreadyExists {
		respond.OK(writer, map[string]any{
			"message":       "You're already on the waitlist!",
			"alreadyExists": true,
		})
		return
	}

	respond.Created(writer, map[string]any{
		"message":   "Successfully joined the waitlist!",
		"success":   true,
		"emailSent": result.EmailSent,
	})
}

// stats handles GET /stats.
func (h *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := h.service.SignupStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

// entries handles GET /entries.
func (h *Handler) entries(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	entries, meta, err := h.service.Entries(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"entries":    entries,
		"pagination": meta,
	})
}
