// Copyright (c) 2026 PalText. All rights reserved.

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/paltextai/backend/internal/platform/request"
	"github.com/paltextai/backend/internal/platform/respond"
	"github.com/paltextai/backend/pkg/pagination"
)

// AdminHandler exposes the authenticated content-management endpoints.
type AdminHandler struct {
	service *Service
}

// NewAdminHandler constructs a new [AdminHandler].
func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// Routes returns the admin router, mounted at /api/blog/admin behind the
// admin-auth middleware.
func (h *AdminHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/posts", h.listPosts)
	router.Post("/posts", h.createPost)
	router.Get("/posts/{id}", h.getPost)
	router.Put("/posts/{id}", h.updatePost)
	router.Delete("/posts/{id}", h.deletePost)
	router.Put("/posts/{id}/publish", h.togglePublish)

	return router
}

// listPosts handles GET /posts. Unlike the public listing it includes drafts
// and full content, and defaults to most recently updated first.
func (h *AdminHandler) listPosts(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	params := AdminListParams{
		Page:      pagination.FromRequest(request),
		SortBy:    queryValues.Get("sortBy"),
		SortOrder: queryValues.Get("sortOrder"),
	}
	if params.SortBy == "" {
		params.SortBy = "updatedAt"
	}

	switch queryValues.Get("published") {
	case "true":
		published := true
		params.Published = &published
	case "false":
		published := false
		params.Published = &published
	}

	posts, meta, err := h.service.ListAll(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"posts":      posts,
		"pagination": meta,
	})
}

// createPost handles POST /posts.
func (h *AdminHandler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := h.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

// getPost handles GET /posts/{id}.
func (h *AdminHandler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := h.service.GetByID(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// updatePost handles PUT /posts/{id}. Only the fields present in the body are
// applied.
func (h *AdminHandler) updatePost(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := h.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// deletePost handles DELETE /posts/{id}.
func (h *AdminHandler) deletePost(writer http.ResponseWriter, request *http.Request) {
	deleted, err := h.service.Delete(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Blog post deleted successfully",
		"post":    deleted,
	})
}

// togglePublish handles PUT /posts/{id}/publish.
func (h *AdminHandler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	post, err := h.service.TogglePublish(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}
