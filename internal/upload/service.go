// Copyright (c) 2026 PalText. All rights reserved.

// Package upload handles blog image hosting.
//
// Images go to Cloudinary when credentials are configured. Without them the
// service falls back to returning a base64 data URL, which keeps local
// development working with no external account.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/constants"
)

// Result is the outcome of a successful image upload.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Service validates uploads and routes them to the configured image host.
type Service struct {
	host   ImageHost
	logger *slog.Logger
}

// NewService constructs a new [Service]. A nil host enables the base64
// fallback.
func NewService(host ImageHost, logger *slog.Logger) *Service {
	return &Service{host: host, logger: logger}
}

// UploadImage validates and stores an image.
//
// The payload must be at most 5MB, carry an image/* content type, and decode
// as an actual image. JPEG, PNG, GIF, and WebP are accepted.
func (service *Service) UploadImage(ctx context.Context, filename string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, apperr.BadRequest("Image file is required")
	}
	if len(data) > constants.MaxUploadBytes {
		return nil, apperr.BadRequest("Image must be smaller than 5MB")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.BadRequest("File must be an image")
	}

	// Sniffing alone passes crafted headers; a full config decode does not.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, apperr.BadRequest("File must be a valid image")
	}

	if service.host == nil {
		service.logger.Info("image_upload_fallback", slog.Int("bytes", len(data)))
		return &Result{
			URL:  fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)),
			Note: "Image hosting is not configured; returned inline data URL",
		}, nil
	}

	url, publicID, err := service.host.Upload(ctx, filename, data)
	if err != nil {
		service.logger.Error("image_upload_failed", slog.String("error", err.Error()))
		return nil, apperr.Internal(err)
	}

	service.logger.Info("image_uploaded", slog.String("public_id", publicID))
	return &Result{URL: url, PublicID: publicID}, nil
}

// DeleteImage removes a hosted image by its public ID.
func (service *Service) DeleteImage(ctx context.Context, publicID string) error {
	if service.host == nil {
		return apperr.BadRequest("Image hosting is not configured")
	}
	if publicID == "" {
		return apperr.BadRequest("Public ID is required")
	}

	if err := service.host.Destroy(ctx, publicID); err != nil {
		if err == ErrAssetNotFound {
			return apperr.NotFound("Image")
		}
		service.logger.Error("image_delete_failed", slog.String("error", err.Error()))
		return apperr.Internal(err)
	}

	service.logger.Info("image_deleted", slog.String("public_id", publicID))
	return nil
}
