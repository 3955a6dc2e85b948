// Copyright (c) 2026 PalText. All rights reserved.

package blog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paltextai/backend/internal/blog"
	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/pkg/pagination"
)

// fakeRepository is an in-memory [blog.Repository] with a unique slug index,
// mirroring the database constraint.
type fakeRepository struct {
	posts map[string]*blog.Post
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: make(map[string]*blog.Post)}
}

func (repo *fakeRepository) Create(_ context.Context, post *blog.Post) error {
	for _, existing := range repo.posts {
		if existing.Slug == post.Slug {
			return apperr.Duplicate("A post with this slug already exists")
		}
	}
	clone := *post
	repo.posts[post.ID] = &clone
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, post *blog.Post) error {
	if _, ok := repo.posts[post.ID]; !ok {
		return apperr.NotFound("Blog post")
	}
	for id, existing := range repo.posts {
		if id != post.ID && existing.Slug == post.Slug {
			return apperr.Duplicate("A post with this slug already exists")
		}
	}
	clone := *post
	repo.posts[post.ID] = &clone
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Blog post")
	}
	delete(repo.posts, id)
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*blog.Post, error) {
	post, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("Blog post")
	}
	clone := *post
	return &clone, nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string, publishedOnly bool) (*blog.Post, error) {
	for _, post := range repo.posts {
		if post.Slug == slug && (!publishedOnly || post.Published) {
			clone := *post
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Blog post")
}

func (repo *fakeRepository) List(_ context.Context, filter blog.Filter, limit, offset int) ([]*blog.Post, int, error) {
	matched := make([]*blog.Post, 0)
	for _, post := range repo.posts {
		if filter.Published != nil && post.Published != *filter.Published {
			continue
		}
		clone := *post
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PublishDate.After(matched[j].PublishDate)
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repo *fakeRepository) Search(_ context.Context, _ string, limit, offset int) ([]*blog.Post, int, error) {
	published := true
	return repo.List(context.Background(), blog.Filter{Published: &published}, limit, offset)
}

func (repo *fakeRepository) IncrementViews(_ context.Context, id string) error {
	post, ok := repo.posts[id]
	if !ok {
		return apperr.NotFound("Blog post")
	}
	post.Views++
	return nil
}

func (repo *fakeRepository) TagCounts(_ context.Context) ([]blog.TagCount, error) {
	counts := make(map[string]int)
	for _, post := range repo.posts {
		if !post.Published {
			continue
		}
		for _, tag := range post.Tags {
			counts[tag]++
		}
	}

	result := make([]blog.TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, blog.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})
	return result, nil
}

func (repo *fakeRepository) Stats(_ context.Context) (*blog.Stats, error) {
	stats := &blog.Stats{}
	for _, post := range repo.posts {
		if !post.Published {
			continue
		}
		stats.TotalPosts++
		stats.TotalViews += post.Views
	}
	return stats, nil
}

// fakeCache is an in-memory [blog.Cache] that records hits and writes.
type fakeCache struct {
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (cache *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, ok := cache.data[key]
	return value, ok
}

func (cache *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	cache.data[key] = value
	cache.sets++
}

func newTestService(repo blog.Repository, cache blog.Cache) *blog.Service {
	return blog.NewService(repo, cache, slog.New(slog.DiscardHandler))
}

/*
TestService_Create covers defaulting, derivation, and validation on create.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies_defaults_and_derivation", func(t *testing.T) {
		service := newTestService(newFakeRepository(), nil)

		post, err := service.Create(ctx, blog.CreateInput{
			Title:   "My First Post",
			Excerpt: "A short summary",
			Content: "Some body text",
			Tags:    []string{" Go ", "Backend"},
		})
		require.NoError(t, err)

		assert.Len(t, post.ID, 24)
		assert.Equal(t, "my-first-post", post.Slug)
		assert.Equal(t, blog.DefaultAuthor, post.Author)
		assert.Equal(t, []string{"go", "backend"}, post.Tags)
		assert.True(t, post.Published)
		assert.Equal(t, 1, post.ReadingTime)
		assert.False(t, post.PublishDate.IsZero())
	})

	t.Run("rejects_missing_required_fields", func(t *testing.T) {
		service := newTestService(newFakeRepository(), nil)

		_, err := service.Create(ctx, blog.CreateInput{Title: "Only a Title"})
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects_duplicate_slug", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo, nil)

		_, err := service.Create(ctx, blog.CreateInput{
			Title: "Same Title", Excerpt: "e", Content: "c",
		})
		require.NoError(t, err)

		_, err = service.Create(ctx, blog.CreateInput{
			Title: "Same Title", Excerpt: "e", Content: "c",
		})
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "DUPLICATE", appErr.Code)
		assert.Equal(t, 400, appErr.HTTPStatus)
	})

	t.Run("honors_explicit_draft_flag", func(t *testing.T) {
		service := newTestService(newFakeRepository(), nil)
		published := false

		post, err := service.Create(ctx, blog.CreateInput{
			Title: "Draft", Excerpt: "e", Content: "c", Published: &published,
		})
		require.NoError(t, err)
		assert.False(t, post.Published)
	})
}

/*
TestService_Update covers partial merges and re-derivation on update.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*blog.Service, *blog.Post) {
		t.Helper()
		service := newTestService(newFakeRepository(), nil)
		post, err := service.Create(ctx, blog.CreateInput{
			Title: "Original Title", Excerpt: "excerpt", Content: "content",
		})
		require.NoError(t, err)
		return service, post
	}

	t.Run("merges_only_supplied_fields", func(t *testing.T) {
		service, post := seed(t)

		newExcerpt := "updated excerpt"
		updated, err := service.Update(ctx, post.ID, blog.UpdateInput{Excerpt: &newExcerpt})
		require.NoError(t, err)

		assert.Equal(t, "updated excerpt", updated.Excerpt)
		assert.Equal(t, "Original Title", updated.Title)
		assert.Equal(t, "original-title", updated.Slug)
	})

	t.Run("title_change_regenerates_slug", func(t *testing.T) {
		service, post := seed(t)

		newTitle := "Completely New Title"
		updated, err := service.Update(ctx, post.ID, blog.UpdateInput{Title: &newTitle})
		require.NoError(t, err)

		assert.Equal(t, "completely-new-title", updated.Slug)
	})

	t.Run("invalid_id_format", func(t *testing.T) {
		service, _ := seed(t)

		_, err := service.Update(ctx, "not-a-hex-id", blog.UpdateInput{})
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "BAD_REQUEST", appErr.Code)
	})

	t.Run("unknown_id", func(t *testing.T) {
		service, _ := seed(t)

		_, err := service.Update(ctx, "507f1f77bcf86cd799439011", blog.UpdateInput{})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_GetBySlug checks view counting and published-only visibility.
*/
func TestService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(ctx, blog.CreateInput{
		Title: "Visible Post", Excerpt: "e", Content: "c",
	})
	require.NoError(t, err)

	t.Run("increments_views_once", func(t *testing.T) {
		post, err := service.GetBySlug(ctx, created.Slug, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), post.Views)

		again, err := service.GetBySlug(ctx, created.Slug, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), again.Views)
	})

	t.Run("draft_is_invisible", func(t *testing.T) {
		published := false
		_, err := service.Update(ctx, created.ID, blog.UpdateInput{Published: &published})
		require.NoError(t, err)

		_, err = service.GetBySlug(ctx, created.Slug, false)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_TogglePublish checks the draft/live flip.
*/
func TestService_TogglePublish(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeRepository(), nil)

	created, err := service.Create(ctx, blog.CreateInput{
		Title: "Toggle Me", Excerpt: "e", Content: "c",
	})
	require.NoError(t, err)
	require.True(t, created.Published)

	toggled, err := service.TogglePublish(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Published)

	back, err := service.TogglePublish(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, back.Published)
}

/*
TestService_Delete checks removal and the returned identity payload.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeRepository(), nil)

	created, err := service.Create(ctx, blog.CreateInput{
		Title: "Doomed Post", Excerpt: "e", Content: "c",
	})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Doomed Post", deleted.Title)

	_, err = service.GetByID(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_ListPublished checks pagination metadata on the public listing.
*/
func TestService_ListPublished(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeRepository(), nil)

	titles := []string{"Post One", "Post Two", "Post Three"}
	for _, title := range titles {
		_, err := service.Create(ctx, blog.CreateInput{
			Title: title, Excerpt: "e", Content: "c",
		})
		require.NoError(t, err)
	}

	posts, meta, err := service.ListPublished(ctx, blog.ListParams{
		Page: pagination.Params{Page: 1, Limit: 2},
	})
	require.NoError(t, err)

	assert.Len(t, posts, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.Pages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

/*
TestService_Tags verifies the cache-aside behavior for the tag aggregate.
*/
func TestService_Tags(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	cache := newFakeCache()
	service := newTestService(repo, cache)

	_, err := service.Create(ctx, blog.CreateInput{
		Title: "Tagged", Excerpt: "e", Content: "c", Tags: []string{"go", "web"},
	})
	require.NoError(t, err)

	first, err := service.Tags(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, cache.sets)

	// Second read must come from the cache, not trigger another write.
	second, err := service.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

/*
TestService_Stats verifies cached stats round-trip through JSON intact.
*/
func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	cache := newFakeCache()
	service := newTestService(repo, cache)

	_, err := service.Create(ctx, blog.CreateInput{
		Title: "Counted", Excerpt: "e", Content: "c",
	})
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPosts)

	cached, ok := cache.Get(ctx, "blog:stats")
	require.True(t, ok)

	decoded := &blog.Stats{}
	require.NoError(t, json.Unmarshal(cached, decoded))
	assert.Equal(t, stats, decoded)
}
