// Copyright (c) 2026 PalText. All rights reserved.

/*
Package blog provides the PostgreSQL implementation for the content library's
data access.

It leans on Postgres features to keep every operation a single round-trip:
  - Full-Text Search: a generated tsvector over title/excerpt/content ranked
    with ts_rank, tie-broken by publish date.
  - Window Functions: COUNT(*) OVER() returns the total result count without a
    separate COUNT query.
  - Atomic Counters: view increments are single UPDATE statements, so
    concurrent reads never lose updates.
*/
package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/database/schema"
	"github.com/paltextai/backend/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// slugConflictMessage matches the public API contract for duplicate slugs.
const slugConflictMessage = "A post with this slug already exists"

// sortColumns whitelists the sortable columns exposed through the API.
var sortColumns = map[string]string{
	"publishDate": schema.BlogPost.PublishDate,
	"updatedAt":   schema.BlogPost.UpdatedAt,
	"title":       schema.BlogPost.Title,
	"views":       schema.BlogPost.Views,
}

// summaryColumns are the columns hydrated for list views (content excluded).
func summaryColumns() string {
	t := schema.BlogPost
	return strings.Join([]string{
		t.ID, t.Title, t.Slug, t.Excerpt, t.FeaturedImage, t.Author, t.Tags,
		t.MetaDescription, t.SEOKeywords, t.Published, t.PublishDate,
		t.UpdatedAt, t.Views, t.ReadingTime,
	}, ", ")
}

func (repository *postgresRepository) Create(ctx context.Context, post *Post) error {
	t := schema.BlogPost
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		t.Table,
		t.ID, t.Title, t.Slug, t.Excerpt, t.Content, t.FeaturedImage, t.Author,
		t.Tags, t.MetaDescription, t.SEOKeywords, t.Published, t.PublishDate,
		t.UpdatedAt, t.Views, t.ReadingTime,
	)

	_, err := repository.pool.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.FeaturedImage, post.Author, post.Tags, post.MetaDescription,
		post.SEOKeywords, post.Published, post.PublishDate, post.UpdatedAt,
		post.Views, post.ReadingTime,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Duplicate(slugConflictMessage)
		}
		return dberr.Wrap(err, "create_post")
	}

	return nil
}

func (repository *postgresRepository) Update(ctx context.Context, post *Post) error {
	t := schema.BlogPost
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14
		WHERE %s = $1
	`,
		t.Table,
		t.Title, t.Slug, t.Excerpt, t.Content, t.FeaturedImage, t.Author,
		t.Tags, t.MetaDescription, t.SEOKeywords, t.Published, t.PublishDate,
		t.UpdatedAt, t.ReadingTime,
		t.ID,
	)

	result, err := repository.pool.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.FeaturedImage, post.Author, post.Tags, post.MetaDescription,
		post.SEOKeywords, post.Published, post.PublishDate, post.UpdatedAt,
		post.ReadingTime,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Duplicate(slugConflictMessage)
		}
		return dberr.Wrap(err, "update_post")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Blog post")
	}

	return nil
}

func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.BlogPost.Table, schema.BlogPost.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Blog post")
	}

	return nil
}

func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	t := schema.BlogPost
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		summaryColumns(), t.Content, t.Table, t.ID)

	post := &Post{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.FeaturedImage,
		&post.Author, &post.Tags, &post.MetaDescription, &post.SEOKeywords,
		&post.Published, &post.PublishDate, &post.UpdatedAt, &post.Views,
		&post.ReadingTime, &post.Content,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Blog post")
		}
		return nil, dberr.Wrap(err, "find_post_by_id")
	}

	return post, nil
}

func (repository *postgresRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*Post, error) {
	t := schema.BlogPost
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		summaryColumns(), t.Content, t.Table, t.Slug)
	if publishedOnly {
		query += fmt.Sprintf(` AND %s = TRUE`, t.Published)
	}

	post := &Post{}
	err := repository.pool.QueryRow(ctx, query, slug).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.FeaturedImage,
		&post.Author, &post.Tags, &post.MetaDescription, &post.SEOKeywords,
		&post.Published, &post.PublishDate, &post.UpdatedAt, &post.Views,
		&post.ReadingTime, &post.Content,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Blog post")
		}
		return nil, dberr.Wrap(err, "find_post_by_slug")
	}

	return post, nil
}

func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	t := schema.BlogPost

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	columns := summaryColumns()
	if filter.IncludeContent {
		columns += ", " + t.Content
	}

	// Window function returns the total count with the page itself.
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, columns, t.Table))

	// Visibility filtering
	if filter.Published != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", t.Published, argID))
		args = append(args, *filter.Published)
		argID++
	}

	// Tag filtering (tags are stored lowercase)
	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, t.Tags))
		args = append(args, strings.ToLower(filter.Tag))
		argID++
	}

	// Author substring filtering, case-insensitive
	if filter.Author != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", t.Author, argID))
		args = append(args, filter.Author)
		argID++
	}

	// Sorting: whitelisted columns only, unknown values fall back to publish date.
	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = t.PublishDate
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortColumn, direction))

	// Page window
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	total := 0

	for rows.Next() {
		post := &Post{}
		dest := []any{
			&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.FeaturedImage,
			&post.Author, &post.Tags, &post.MetaDescription, &post.SEOKeywords,
			&post.Published, &post.PublishDate, &post.UpdatedAt, &post.Views,
			&post.ReadingTime,
		}
		if filter.IncludeContent {
			dest = append(dest, &post.Content)
		}
		dest = append(dest, &total)

		if err := rows.Scan(dest...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}

	return posts, total, nil
}

func (repository *postgresRepository) Search(ctx context.Context, query string, limit, offset int) ([]*Post, int, error) {
	t := schema.BlogPost

	// Relevance ordering via ts_rank; recency breaks ties. Only published
	// posts are searchable.
	searchQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = TRUE
		  AND %s @@ websearch_to_tsquery('english', $1)
		ORDER BY ts_rank(%s, websearch_to_tsquery('english', $1)) DESC, %s DESC
		LIMIT $2 OFFSET $3
	`,
		summaryColumns(), t.Table, t.Published, t.SearchVector,
		t.SearchVector, t.PublishDate,
	)

	rows, err := repository.pool.Query(ctx, searchQuery, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	total := 0

	for rows.Next() {
		post := &Post{}
		err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.FeaturedImage,
			&post.Author, &post.Tags, &post.MetaDescription, &post.SEOKeywords,
			&post.Published, &post.PublishDate, &post.UpdatedAt, &post.Views,
			&post.ReadingTime, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_search_result")
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "search_posts")
	}

	return posts, total, nil
}

// IncrementViews performs a thread-safe counter update. Concurrent increments
// never lose updates because the addition happens inside the database.
func (repository *postgresRepository) IncrementViews(ctx context.Context, id string) error {
	t := schema.BlogPost
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		t.Table, t.Views, t.Views, t.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "increment_views")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Blog post")
	}

	return nil
}

func (repository *postgresRepository) TagCounts(ctx context.Context) ([]TagCount, error) {
	t := schema.BlogPost
	query := fmt.Sprintf(`
		SELECT tag, COUNT(*) AS count
		FROM %s, unnest(%s) AS tag
		WHERE %s = TRUE
		GROUP BY tag
		ORDER BY count DESC, tag ASC
	`, t.Table, t.Tags, t.Published)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "tag_counts")
	}
	defer rows.Close()

	counts := make([]TagCount, 0)
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_tag_count")
		}
		counts = append(counts, tc)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "tag_counts")
	}

	return counts, nil
}

func (repository *postgresRepository) Stats(ctx context.Context) (*Stats, error) {
	t := schema.BlogPost
	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(SUM(%s), 0),
		       COUNT(*) FILTER (WHERE %s >= now() - interval '7 days')
		FROM %s
		WHERE %s = TRUE
	`, t.Views, t.PublishDate, t.Table, t.Published)

	stats := &Stats{}
	err := repository.pool.QueryRow(ctx, query).Scan(
		&stats.TotalPosts, &stats.TotalViews, &stats.RecentPosts,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "blog_stats")
	}

	return stats, nil
}
