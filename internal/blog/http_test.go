// Copyright (c) 2026 PalText. All rights reserved.

package blog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paltextai/backend/internal/blog"
)

func newTestRouter(t *testing.T, seedTitles ...string) (http.Handler, *blog.Service) {
	t.Helper()

	service := newTestService(newFakeRepository(), nil)
	for _, title := range seedTitles {
		_, err := service.Create(context.Background(), blog.CreateInput{
			Title: title, Excerpt: "excerpt", Content: "content",
		})
		require.NoError(t, err)
	}

	return blog.NewHandler(service).Routes(), service
}

/*
TestHandler_ListPosts checks the public listing envelope.
*/
func TestHandler_ListPosts(t *testing.T) {
	router, _ := newTestRouter(t, "First Post", "Second Post")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/posts?limit=1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Posts      []map[string]any `json:"posts"`
		Pagination struct {
			Current int  `json:"current"`
			Pages   int  `json:"pages"`
			Total   int  `json:"total"`
			HasNext bool `json:"hasNext"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Len(t, body.Posts, 1)
	assert.Equal(t, 1, body.Pagination.Current)
	assert.Equal(t, 2, body.Pagination.Pages)
	assert.Equal(t, 2, body.Pagination.Total)
	assert.True(t, body.Pagination.HasNext)
}

/*
TestHandler_GetPostBySlug checks single-post retrieval and the view counter
query flag.
*/
func TestHandler_GetPostBySlug(t *testing.T) {
	router, _ := newTestRouter(t, "Readable Post")

	t.Run("found", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/posts/readable-post", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var post blog.Post
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &post))
		assert.Equal(t, "Readable Post", post.Title)
		assert.Equal(t, int64(0), post.Views)
	})

	t.Run("increment_views_flag", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder,
			httptest.NewRequest("GET", "/posts/readable-post?incrementViews=true", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var post blog.Post
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &post))
		assert.Equal(t, int64(1), post.Views)
	})

	t.Run("not_found", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/posts/nope", nil))

		require.Equal(t, http.StatusNotFound, recorder.Code)

		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "NOT_FOUND", body.Code)
	})
}

/*
TestHandler_RecentPosts checks that the recent listing is a bare array.
*/
func TestHandler_RecentPosts(t *testing.T) {
	router, _ := newTestRouter(t, "First Post", "Second Post")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/recent?limit=1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var posts []blog.Post
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)
}

/*
TestHandler_ListTags checks that tag counts come back as a bare array.
*/
func TestHandler_ListTags(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)
	_, err := service.Create(context.Background(), blog.CreateInput{
		Title: "Tagged Post", Excerpt: "excerpt", Content: "content",
		Tags: []string{"ai"},
	})
	require.NoError(t, err)

	router := blog.NewHandler(service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/tags", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var tags []blog.TagCount
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "ai", tags[0].Tag)
	assert.Equal(t, 1, tags[0].Count)
}

/*
TestAdminHandler_CreatePost checks creation and validation over HTTP.
*/
func TestAdminHandler_CreatePost(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)
	router := blog.NewAdminHandler(service).Routes()

	t.Run("creates_with_201", func(t *testing.T) {
		payload := `{"title":"Via HTTP","excerpt":"e","content":"c"}`
		request := httptest.NewRequest("POST", "/posts", strings.NewReader(payload))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var post blog.Post
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &post))
		assert.Equal(t, "via-http", post.Slug)
	})

	t.Run("validation_failure_is_400", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/posts", strings.NewReader(`{"title":"Only Title"}`))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("invalid_id_is_400", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/posts/short-id", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
