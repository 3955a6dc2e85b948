// Copyright (c) 2026 PalText. All rights reserved.

package blog

import (
	"math"
	"strings"
	"time"

	"github.com/paltextai/backend/pkg/slug"
)

// DefaultAuthor is attributed to posts created without an explicit author.
const DefaultAuthor = "PalText Team"

// wordsPerMinute is the reading speed assumed when estimating reading time.
const wordsPerMinute = 200

// Post is a blog article in the marketing site's content library.
//
// The slug is the public identifier used in URLs; the numeric-looking ID is
// internal and only surfaces on the admin API. Content is omitted from list
// payloads (stores simply do not hydrate it there).
type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content,omitempty"`
	FeaturedImage   string    `json:"featuredImage,omitempty"`
	Author          string    `json:"author"`
	Tags            []string  `json:"tags"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	SEOKeywords     []string  `json:"seoKeywords"`
	Published       bool      `json:"published"`
	PublishDate     time.Time `json:"publishDate"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Views           int64     `json:"views"`
	ReadingTime     int       `json:"readingTime"`
}

// TagCount is one entry of the public tag aggregation.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats summarizes the published content library.
type Stats struct {
	TotalPosts int   `json:"totalPosts"`
	TotalViews int64 `json:"totalViews"`
	// RecentPosts counts posts published within the last 7 days.
	RecentPosts int `json:"recentPosts"`
}

// JSON field names used in validation errors.
const (
	FieldTitle           = "title"
	FieldSlug            = "slug"
	FieldExcerpt         = "excerpt"
	FieldContent         = "content"
	FieldMetaDescription = "metaDescription"
)

// Derive applies the pre-persist derivation rules to a post, in place.
//
// # Rules
//
//   - Slug: derived from the title whenever the slug is empty or the title
//     changed (lowercased, non-alphanumeric runs collapsed to one hyphen,
//     leading/trailing hyphens trimmed).
//   - Reading time: recomputed as ceil(words/200), minimum 1 minute, whenever
//     the content changed.
//   - UpdatedAt: always refreshed to now.
//
// Derive is a pure transformation independent of the storage layer; callers
// invoke it before every persist.
func Derive(post *Post, titleChanged, contentChanged bool, now time.Time) {
	if post.Slug == "" || titleChanged {
		post.Slug = slug.From(post.Title)
	}

	if contentChanged || post.ReadingTime == 0 {
		post.ReadingTime = EstimateReadingTime(post.Content)
	}

	post.UpdatedAt = now
}

// EstimateReadingTime returns the estimated minutes to read content at
// 200 words per minute, never less than 1.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// NormalizeTerms lowercases and trims a tag or keyword list, dropping empties.
// Tags and SEO keywords are stored lowercase so lookups stay case-insensitive.
func NormalizeTerms(terms []string) []string {
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		clean := strings.ToLower(strings.TrimSpace(term))
		if clean != "" {
			normalized = append(normalized, clean)
		}
	}
	return normalized
}
