// Copyright (c) 2026 PalText. All rights reserved.

package waitlist

import "context"

// Repository is the persistence boundary for waitlist entries.
type Repository interface {

	// Insert persists a new entry. A duplicate email yields an
	// apperr.Duplicate error.
	Insert(ctx context.Context, entry *Entry) error

	// FindByEmail returns the entry for a normalized email address, or
	// apperr NOT_FOUND when no such signup exists.
	FindByEmail(ctx context.Context, email string) (*Entry, error)

	// List returns a page of entries, newest first, plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Entry, int, error)

	// Stats returns the aggregate signup counts.
	Stats(ctx context.Context) (*Stats, error)
}
