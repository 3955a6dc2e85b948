// Copyright (c) 2026 PalText. All rights reserved.

package upload

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/constants"
	requestutil "github.com/paltextai/backend/internal/platform/request"
	"github.com/paltextai/backend/internal/platform/respond"
)

// Handler exposes the image upload endpoints. All routes require admin auth.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the upload router, mounted at /api/upload behind the
// admin-auth middleware.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/image", h.uploadImage)
	router.Delete("/image/{publicId}", h.deleteImage)

	return router
}

// uploadImage handles POST /image. The image arrives as the multipart form
// field "image".
func (h *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	// One extra byte over the limit lets the size check distinguish
	// "exactly at the cap" from "over it".
	if err := request.ParseMultipartForm(constants.MaxUploadBytes + 1); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid multipart form"))
		return
	}

	file, header, err := request.FormFile("image")
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Image file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, int64(constants.MaxUploadBytes)+1))
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	result, err := h.service.UploadImage(request.Context(), header.Filename, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// deleteImage handles DELETE /image/{publicId}.
func (h *Handler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	publicID := requestutil.Param(request, "publicId")

	if err := h.service.DeleteImage(request.Context(), publicID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Image deleted successfully",
	})
}
