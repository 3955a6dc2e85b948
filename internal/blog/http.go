// Copyright (c) 2026 PalText. All rights reserved.

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/paltextai/backend/internal/platform/request"
	"github.com/paltextai/backend/internal/platform/respond"
	"github.com/paltextai/backend/pkg/pagination"
	"github.com/paltextai/backend/pkg/query"
)

// Handler exposes the public, read-only content endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public router, mounted at /api/blog.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/posts", h.listPosts)
	router.Get("/posts/{slug}", h.getPostBySlug)
	router.Get("/recent", h.recentPosts)
	router.Get("/tags", h.listTags)
	router.Get("/stats", h.getStats)

	return router
}

// listPosts handles GET /posts.
//
// Supports page/limit pagination plus tag, author, search, and sort
// parameters. A search query switches the listing to full-text relevance
// ordering.
func (h *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	params := ListParams{
		Page:      pagination.FromRequest(request),
		Tag:       queryValues.Get("tag"),
		Search:    queryValues.Get("search"),
		Author:    queryValues.Get("author"),
		SortBy:    queryValues.Get("sortBy"),
		SortOrder: queryValues.Get("sortOrder"),
	}

	posts, meta, err := h.service.ListPublished(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"posts":      posts,
		"pagination": meta,
	})
}

// getPostBySlug handles GET /posts/{slug}.
//
// incrementViews=true bumps the view counter as a side effect.
func (h *Handler) getPostBySlug(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")
	incrementViews := query.Bool(request.URL.Query().Get("incrementViews"), false)

	post, err := h.service.GetBySlug(request.Context(), slug, incrementViews)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// recentPosts handles GET /recent.
func (h *Handler) recentPosts(writer http.ResponseWriter, request *http.Request) {
	limit := query.Int(request.URL.Query().Get("limit"), 5)

	posts, err := h.service.Recent(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, posts)
}

// listTags handles GET /tags.
func (h *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := h.service.Tags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

// getStats handles GET /stats.
func (h *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := h.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
