package blog

import "context"

// Filter narrows a post listing. Zero values mean "no restriction".
type Filter struct {
	// Published restricts by visibility when non-nil.
	Published *bool
	// Tag matches posts whose tag list contains the (lowercased) tag.
	Tag string
	// Author is a case-insensitive substring match on the author name.
	Author string
	// SortBy is one of publishDate, updatedAt, title, views.
	SortBy string
	// SortOrder is "asc" or "desc".
	SortOrder string
	// IncludeContent hydrates the full content field (admin listings).
	IncludeContent bool
}

// Repository is the persistence contract for blog posts.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	// Update persists the full merged record; last write wins.
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*Post, error)
	// FindBySlug returns the post with full content. With publishedOnly set,
	// unpublished posts are reported as not found.
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*Post, error)

	// List returns a filtered, sorted page of posts plus the total count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error)
	// Search ranks published posts by full-text relevance over title,
	// excerpt, and content; ties break on publish date, newest first.
	// Content is not hydrated.
	Search(ctx context.Context, query string, limit, offset int) ([]*Post, int, error)

	// IncrementViews atomically bumps the view counter by one.
	IncrementViews(ctx context.Context, id string) error

	TagCounts(ctx context.Context) ([]TagCount, error)
	Stats(ctx context.Context) (*Stats, error)
}
