// Copyright (c) 2026 PalText. All rights reserved.

package waitlist

import (
	"context"
	"fmt"

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

// NewPostgresRepository constructs a PostgreSQL backed waitlist store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const duplicateEmailMessage = "Email is already on the waitlist"

func (repository *postgresRepository) Insert(ctx context.Context, entry *Entry) error {
	t := schema.WaitlistEntry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		t.Table,
		t.ID, t.Email, t.Source, t.BrevoContactID, t.EmailSent, t.CreatedAt,
	)

	_, err := repository.pool.Exec(ctx, query,
		entry.ID, entry.Email, entry.Source, entry.BrevoContactID,
		entry.EmailSent, entry.CreatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Duplicate(duplicateEmailMessage)
		}
		return dberr.Wrap(err, "insert_waitlist_entry")
	}

	return nil
}

func (repository *postgresRepository) FindByEmail(ctx context.Context, email string) (*Entry, error) {
	t := schema.WaitlistEntry
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		t.ID, t.Email, t.Source, t.BrevoContactID, t.EmailSent, t.CreatedAt,
		t.Table, t.Email,
	)

	entry := &Entry{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&entry.ID, &entry.Email, &entry.Source, &entry.BrevoContactID,
		&entry.EmailSent, &entry.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Waitlist entry")
		}
		return nil, dberr.Wrap(err, "find_waitlist_entry")
	}

	return entry, nil
}

func (repository *postgresRepository) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	t := schema.WaitlistEntry
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		t.ID, t.Email, t.Source, t.BrevoContactID, t.EmailSent, t.CreatedAt,
		t.Table, t.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_waitlist_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	total := 0

	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.ID, &entry.Email, &entry.Source, &entry.BrevoContactID,
			&entry.EmailSent, &entry.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_waitlist_entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_waitlist_entries")
	}

	return entries, total, nil
}

func (repository *postgresRepository) Stats(ctx context.Context) (*Stats, error) {
	t := schema.WaitlistEntry

	totalsQuery := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE %s >= date_trunc('day', now()))
		FROM %s
	`, t.CreatedAt, t.Table)

	stats := &Stats{BySource: make(map[string]int)}
	if err := repository.pool.QueryRow(ctx, totalsQuery).Scan(&stats.Total, &stats.Today); err != nil {
		return nil, dberr.Wrap(err, "waitlist_stats")
	}

	bySourceQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM %s
		GROUP BY %s
	`, t.Source, t.Table, t.Source)

	rows, err := repository.pool.Query(ctx, bySourceQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "waitlist_stats_by_source")
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_waitlist_source")
		}
		stats.BySource[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "waitlist_stats_by_source")
	}

	return stats, nil
}
