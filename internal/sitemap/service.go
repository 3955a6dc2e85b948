// Copyright (c) 2026 PalText. All rights reserved.

package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/paltextai/backend/internal/blog"
	"github.com/paltextai/backend/internal/platform/apperr"
)

// pageSize bounds the per-query row count while walking all published posts.
const pageSize = 500

// Service builds and publishes the sitemap.
type Service struct {
	posts      blog.Repository
	baseURL    string
	outputPath string
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service].
func NewService(posts blog.Repository, baseURL, outputPath string, logger *slog.Logger) *Service {
	return &Service{
		posts:      posts,
		baseURL:    baseURL,
		outputPath: outputPath,
		logger:     logger,
		now:        time.Now,
	}
}

// XML renders the sitemap document for every published post.
func (service *Service) XML(ctx context.Context) ([]byte, int, error) {
	posts, err := service.publishedPosts(ctx)
	if err != nil {
		return nil, 0, err
	}

	body, err := Build(service.baseURL, posts, service.now()).Encode()
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return body, len(posts), nil
}

// GenerateResult reports what a static generation run produced.
type GenerateResult struct {
	PostsCount int    `json:"postsCount"`
	Path       string `json:"path"`
}

// Generate writes the sitemap to the configured static path so the web
// server can serve it without hitting the API.
func (service *Service) Generate(ctx context.Context) (*GenerateResult, error) {
	body, count, err := service.XML(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(service.outputPath), 0o755); err != nil {
		return nil, apperr.Internal(fmt.Errorf("sitemap: create output directory: %w", err))
	}
	if err := os.WriteFile(service.outputPath, body, 0o644); err != nil {
		return nil, apperr.Internal(fmt.Errorf("sitemap: write file: %w", err))
	}

	service.logger.Info("sitemap_generated",
		slog.Int("posts", count),
		slog.String("path", service.outputPath),
	)

	return &GenerateResult{PostsCount: count, Path: service.outputPath}, nil
}

// publishedPosts walks every published post, newest first.
func (service *Service) publishedPosts(ctx context.Context) ([]*blog.Post, error) {
	published := true
	filter := blog.Filter{Published: &published}

	all := make([]*blog.Post, 0)
	for offset := 0; ; offset += pageSize {
		page, total, err := service.posts.List(ctx, filter, pageSize, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) == 0 || len(all) >= total {
			return all, nil
		}
	}
}
