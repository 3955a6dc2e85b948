// Copyright (c) 2026 PalText. All rights reserved.

package sitemap_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paltextai/backend/internal/blog"
	"github.com/paltextai/backend/internal/sitemap"
)

// fakePostRepository serves a fixed slice of published posts through the
// [blog.Repository] listing; the remaining methods are unused here.
type fakePostRepository struct {
	blog.Repository

	posts []*blog.Post
}

func (repo *fakePostRepository) List(_ context.Context, _ blog.Filter, limit, offset int) ([]*blog.Post, int, error) {
	total := len(repo.posts)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return repo.posts[offset:end], total, nil
}

func makePosts(count int, base time.Time) []*blog.Post {
	posts := make([]*blog.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, &blog.Post{
			Slug:        "post-" + string(rune('a'+i)),
			PublishDate: base.Add(-time.Duration(i+1) * 24 * time.Hour),
			UpdatedAt:   base.Add(-time.Duration(i+1) * 12 * time.Hour),
		})
	}
	return posts
}

/*
TestBuild verifies URL ordering, priorities, and last-modified stamps.
*/
func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("static_pages_come_first", func(t *testing.T) {
		set := sitemap.Build("https://www.paltextai.com", nil, now)

		require.Len(t, set.URLs, 2)
		assert.Equal(t, "https://www.paltextai.com/", set.URLs[0].Loc)
		assert.Equal(t, "1.0", set.URLs[0].Priority)
		assert.Equal(t, "weekly", set.URLs[0].ChangeFreq)
		assert.Equal(t, "https://www.paltextai.com/blog", set.URLs[1].Loc)
		assert.Equal(t, "0.9", set.URLs[1].Priority)
		assert.Equal(t, "daily", set.URLs[1].ChangeFreq)
	})

	t.Run("first_ten_posts_get_higher_priority", func(t *testing.T) {
		posts := makePosts(12, now)
		set := sitemap.Build("https://www.paltextai.com", posts, now)

		require.Len(t, set.URLs, 14)
		assert.Equal(t, "0.8", set.URLs[2].Priority)
		assert.Equal(t, "0.8", set.URLs[11].Priority)
		assert.Equal(t, "0.7", set.URLs[12].Priority)
		assert.Equal(t, "0.7", set.URLs[13].Priority)
	})

	t.Run("lastmod_is_date_only", func(t *testing.T) {
		posts := makePosts(1, now)
		set := sitemap.Build("https://www.paltextai.com", posts, now)

		assert.Equal(t, "2026-03-14", set.URLs[2].LastMod)
	})

	t.Run("lastmod_falls_back_to_publish_date", func(t *testing.T) {
		post := &blog.Post{
			Slug:        "no-update",
			PublishDate: time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC),
		}
		set := sitemap.Build("https://www.paltextai.com", []*blog.Post{post}, now)

		assert.Equal(t, "2026-01-02", set.URLs[2].LastMod)
	})
}

/*
TestURLSet_Encode checks the XML document shape.
*/
func TestURLSet_Encode(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	set := sitemap.Build("https://www.paltextai.com", makePosts(1, now), now)

	body, err := set.Encode()
	require.NoError(t, err)

	xml := string(body)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, xml, "<loc>https://www.paltextai.com/blog/post-a</loc>")
	assert.Contains(t, xml, "<changefreq>monthly</changefreq>")
}

/*
TestService_Generate checks the static file output.
*/
func TestService_Generate(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakePostRepository{posts: makePosts(3, now)}
	outputPath := filepath.Join(t.TempDir(), "public", "sitemap.xml")

	service := sitemap.NewService(repo, "https://www.paltextai.com", outputPath,
		slog.New(slog.DiscardHandler))

	result, err := service.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.PostsCount)
	assert.Equal(t, outputPath, result.Path)

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "<loc>https://www.paltextai.com/blog/post-b</loc>")
}
