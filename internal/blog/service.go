// Copyright (c) 2026 PalText. All rights reserved.

package blog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/constants"
	"github.com/paltextai/backend/internal/platform/validate"
	"github.com/paltextai/backend/pkg/objectid"
	"github.com/paltextai/backend/pkg/pagination"
)

// # Service Layer

// Service orchestrates the business logic for the content library.
//
// It owns the derivation/validation pipeline that runs before every persist
// and translates storage errors into the API error taxonomy. The optional
// cache shields the tag/stat aggregates; everything else goes straight to the
// repository.
type Service struct {
	repository Repository
	cache      Cache
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service]. The cache may be nil.
func NewService(repository Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// # Public Queries

// ListParams captures the public listing query surface.
type ListParams struct {
	Page      pagination.Params
	Tag       string
	Search    string
	Author    string
	SortBy    string
	SortOrder string
}

// ListPublished returns a page of published posts plus pagination metadata.
//
// When a search query is present the listing switches to full-text relevance
// ordering and the sort parameters are ignored. Content is never hydrated on
// list views.
func (service *Service) ListPublished(ctx context.Context, params ListParams) ([]*Post, pagination.Meta, error) {
	limit := params.Page.Limit
	offset := params.Page.Offset()

	if params.Search != "" {
		posts, total, err := service.repository.Search(ctx, params.Search, limit, offset)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		return posts, pagination.NewMeta(params.Page.Page, limit, total), nil
	}

	published := true
	filter := Filter{
		Published: &published,
		Tag:       params.Tag,
		Author:    params.Author,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
	}

	posts, total, err := service.repository.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.NewMeta(params.Page.Page, limit, total), nil
}

// GetBySlug returns the published post for a public URL, with full content.
//
// With incrementViews set, the view counter is bumped exactly once; the
// returned record reflects the new count.
func (service *Service) GetBySlug(ctx context.Context, slug string, incrementViews bool) (*Post, error) {
	post, err := service.repository.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	if incrementViews {
		if err := service.repository.IncrementViews(ctx, post.ID); err != nil {
			return nil, err
		}
		post.Views++
	}

	return post, nil
}

// Recent returns the newest published posts without content.
func (service *Service) Recent(ctx context.Context, limit int) ([]*Post, error) {
	if limit < 1 || limit > pagination.MaxLimit {
		limit = 5
	}

	published := true
	posts, _, err := service.repository.List(ctx, Filter{Published: &published}, limit, 0)
	return posts, err
}

// Tags returns distinct tags among published posts with per-tag counts,
// highest count first. Results are served from the cache when fresh.
func (service *Service) Tags(ctx context.Context) ([]TagCount, error) {
	if cached, ok := service.cacheGet(ctx, constants.CacheKeyBlogTags); ok {
		var counts []TagCount
		if err := json.Unmarshal(cached, &counts); err == nil {
			return counts, nil
		}
	}

	counts, err := service.repository.TagCounts(ctx)
	if err != nil {
		return nil, err
	}

	service.cacheSet(ctx, constants.CacheKeyBlogTags, counts)
	return counts, nil
}

// Stats returns the published-content statistics, served from the cache when
// fresh.
func (service *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached, ok := service.cacheGet(ctx, constants.CacheKeyBlogStats); ok {
		stats := &Stats{}
		if err := json.Unmarshal(cached, stats); err == nil {
			return stats, nil
		}
	}

	stats, err := service.repository.Stats(ctx)
	if err != nil {
		return nil, err
	}

	service.cacheSet(ctx, constants.CacheKeyBlogStats, stats)
	return stats, nil
}

// # Admin Queries

// AdminListParams captures the admin listing query surface. Unlike the public
// listing it can see drafts and returns full records.
type AdminListParams struct {
	Page      pagination.Params
	Published *bool
	SortBy    string
	SortOrder string
}

// ListAll returns a page of posts for the admin console, drafts included.
func (service *Service) ListAll(ctx context.Context, params AdminListParams) ([]*Post, pagination.Meta, error) {
	filter := Filter{
		Published:      params.Published,
		SortBy:         params.SortBy,
		SortOrder:      params.SortOrder,
		IncludeContent: true,
	}

	posts, total, err := service.repository.List(ctx, filter, params.Page.Limit, params.Page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.NewMeta(params.Page.Page, params.Page.Limit, total), nil
}

// GetByID returns a full post record for editing.
// The identifier must be a 24-character hex ID.
func (service *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	if !objectid.IsValid(id) {
		return nil, apperr.BadRequest("Invalid blog post ID")
	}
	return service.repository.FindByID(ctx, id)
}

// # Admin Mutations

// CreateInput holds the fields accepted when creating a post.
type CreateInput struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	FeaturedImage   string     `json:"featuredImage"`
	Author          string     `json:"author"`
	Tags            []string   `json:"tags"`
	MetaDescription string     `json:"metaDescription"`
	SEOKeywords     []string   `json:"seoKeywords"`
	Published       *bool      `json:"published"`
	PublishDate     *time.Time `json:"publishDate"`
}

// Create validates, derives, and persists a new post.
//
// Slug and reading time are computed at save time; posts default to published
// with the creation time as publish date.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Post, error) {
	now := service.now()

	post := &Post{
		ID:              objectid.New(),
		Title:           input.Title,
		Slug:            input.Slug,
		Excerpt:         input.Excerpt,
		Content:         input.Content,
		FeaturedImage:   input.FeaturedImage,
		Author:          input.Author,
		Tags:            NormalizeTerms(input.Tags),
		MetaDescription: input.MetaDescription,
		SEOKeywords:     NormalizeTerms(input.SEOKeywords),
		Published:       true,
		PublishDate:     now,
	}

	if input.Author == "" {
		post.Author = DefaultAuthor
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.PublishDate != nil {
		post.PublishDate = *input.PublishDate
	}

	Derive(post, true, true, now)

	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := service.repository.Create(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
	)

	return post, nil
}

// UpdateInput holds the fields accepted when updating a post. Nil fields are
// left untouched; supplied fields overwrite the stored values (last write
// wins, no version check).
type UpdateInput struct {
	Title           *string    `json:"title"`
	Slug            *string    `json:"slug"`
	Excerpt         *string    `json:"excerpt"`
	Content         *string    `json:"content"`
	FeaturedImage   *string    `json:"featuredImage"`
	Author          *string    `json:"author"`
	Tags            []string   `json:"tags"`
	MetaDescription *string    `json:"metaDescription"`
	SEOKeywords     []string   `json:"seoKeywords"`
	Published       *bool      `json:"published"`
	PublishDate     *time.Time `json:"publishDate"`
}

// Update merges the provided fields into the stored record and re-runs the
// same derivation/validation pipeline as create.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Post, error) {
	if !objectid.IsValid(id) {
		return nil, apperr.BadRequest("Invalid blog post ID")
	}

	post, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	titleChanged := false
	contentChanged := false

	if input.Title != nil && *input.Title != post.Title {
		post.Title = *input.Title
		titleChanged = true
	}
	if input.Slug != nil {
		post.Slug = *input.Slug
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Content != nil && *input.Content != post.Content {
		post.Content = *input.Content
		contentChanged = true
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.Author != nil {
		post.Author = *input.Author
	}
	if input.Tags != nil {
		post.Tags = NormalizeTerms(input.Tags)
	}
	if input.MetaDescription != nil {
		post.MetaDescription = *input.MetaDescription
	}
	if input.SEOKeywords != nil {
		post.SEOKeywords = NormalizeTerms(input.SEOKeywords)
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.PublishDate != nil {
		post.PublishDate = *input.PublishDate
	}

	Derive(post, titleChanged, contentChanged, service.now())

	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := service.repository.Update(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))

	return post, nil
}

// DeletedPost identifies a permanently removed record.
type DeletedPost struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Delete permanently removes a post. There is no soft delete.
func (service *Service) Delete(ctx context.Context, id string) (*DeletedPost, error) {
	if !objectid.IsValid(id) {
		return nil, apperr.BadRequest("Invalid blog post ID")
	}

	post, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.repository.Delete(ctx, id); err != nil {
		return nil, err
	}

	service.logger.Warn("post_deleted",
		slog.String("post_id", post.ID),
		slog.String("title", post.Title),
	)

	return &DeletedPost{ID: post.ID, Title: post.Title}, nil
}

// TogglePublish flips the draft/live state of a post and persists it.
// This is the only mutation that moves a post between the two visibility
// states without supplying the field explicitly.
func (service *Service) TogglePublish(ctx context.Context, id string) (*Post, error) {
	if !objectid.IsValid(id) {
		return nil, apperr.BadRequest("Invalid blog post ID")
	}

	post, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Published = !post.Published
	Derive(post, false, false, service.now())

	if err := service.repository.Update(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_publish_toggled",
		slog.String("post_id", post.ID),
		slog.Bool("published", post.Published),
	)

	return post, nil
}

// # Internal Helpers

// validatePost enforces the field constraints shared by create and update.
func validatePost(post *Post) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).MaxLen(FieldTitle, post.Title, 200)
	validator.Required(FieldExcerpt, post.Excerpt).MaxLen(FieldExcerpt, post.Excerpt, 500)
	validator.Required(FieldContent, post.Content)
	validator.MaxLen(FieldMetaDescription, post.MetaDescription, 160)

	if post.Slug != "" {
		validator.Slug(FieldSlug, post.Slug)
	} else {
		// A slug can only be empty if the title produced no usable characters.
		validator.Custom(FieldSlug, true, "Title must contain at least one letter or digit")
	}

	return validator.Err()
}

func (service *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if service.cache == nil {
		return nil, false
	}
	return service.cache.Get(ctx, key)
}

func (service *Service) cacheSet(ctx context.Context, key string, value any) {
	if service.cache == nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	service.cache.Set(ctx, key, encoded, constants.CacheAggregateTTL)
}
