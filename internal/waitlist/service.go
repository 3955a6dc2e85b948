// Copyright (c) 2026 PalText. All rights reserved.

package waitlist

import (
	"context"
	"log/slog"
	"time"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/metrics"
	"github.com/paltextai/backend/internal/platform/validate"
	"github.com/paltextai/backend/pkg/objectid"
	"github.com/paltextai/backend/pkg/pagination"
)

// JoinResult describes the outcome of a signup attempt.
type JoinResult struct {
	AlreadyExists bool
	EmailSent     bool
	Entry         *Entry
}

// Service implements the signup flow: validate, dedupe, enroll with the
// mailing-list provider, persist.
type Service struct {
	repository Repository
	mailer     Mailer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service]. The mailer may be nil, in which case
// signups are stored without the external enrollment.
func NewService(repository Repository, mailer Mailer, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		mailer:     mailer,
		logger:     logger,
		now:        time.Now,
	}
}

// Join processes a signup.
//
// A duplicate email is not an error: the flow reports it so the site can show
// a friendly message. Provider failures are logged and reflected in the
// stored entry but never surface to the caller.
func (service *Service) Join(ctx context.Context, email, source string) (*JoinResult, error) {
	email = NormalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required("email", email).Email("email", email)
	if err := validator.Err(); err != nil {
		metrics.WaitlistJoinsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if _, err := service.repository.FindByEmail(ctx, email); err == nil {
		metrics.WaitlistJoinsTotal.WithLabelValues("duplicate").Inc()
		return &JoinResult{AlreadyExists: true}, nil
	}

	entry := &Entry{
		ID:        objectid.New(),
		Email:     email,
		Source:    NormalizeSource(source),
		CreatedAt: service.now(),
	}

	service.enroll(ctx, entry)

	if err := service.repository.Insert(ctx, entry); err != nil {

		// A concurrent signup can slip in between the pre-check and the
		// insert; the unique index is the source of truth.
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "DUPLICATE" {
			metrics.WaitlistJoinsTotal.WithLabelValues("duplicate").Inc()
			return &JoinResult{AlreadyExists: true}, nil
		}
		return nil, err
	}

	metrics.WaitlistJoinsTotal.WithLabelValues("created").Inc()
	service.logger.Info("waitlist_joined",
		slog.String("source", entry.Source),
		slog.Bool("email_sent", entry.EmailSent),
	)

	return &JoinResult{EmailSent: entry.EmailSent, Entry: entry}, nil
}

// enroll runs the best-effort provider calls, mutating the entry with
// whatever succeeded.
func (service *Service) enroll(ctx context.Context, entry *Entry) {
	if service.mailer == nil {
		return
	}

	contactID, err := service.mailer.CreateContact(ctx, entry.Email, entry.Source)
	if err != nil {
		service.logger.Warn("brevo_contact_create_failed", slog.String("error", err.Error()))
	} else if contactID != "" {
		entry.BrevoContactID = &contactID
	}

	if err := service.mailer.SendWelcomeEmail(ctx, entry.Email); err != nil {
		service.logger.Warn("brevo_welcome_email_failed", slog.String("error", err.Error()))
	} else {
		entry.EmailSent = true
	}
}

// Entries returns a page of signups for the admin console, newest first.
func (service *Service) Entries(ctx context.Context, page pagination.Params) ([]*Entry, pagination.Meta, error) {
	entries, total, err := service.repository.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return entries, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// SignupStats returns the aggregate signup counts.
func (service *Service) SignupStats(ctx context.Context) (*Stats, error) {
	return service.repository.Stats(ctx)
}
