// Copyright (c) 2026 PalText. All rights reserved.

// Package auth implements the single-admin authentication flow.
//
// There are no user accounts. One password, configured as a bcrypt hash,
// unlocks a stateless admin token; logout is a client-side concern.
package auth

import (
	"log/slog"
	"time"

	"github.com/paltextai/backend/internal/platform/apperr"
	"github.com/paltextai/backend/internal/platform/constants"
	"github.com/paltextai/backend/internal/platform/sec"
)

// Session is the payload returned after a successful login.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser describes the authenticated principal to the client.
type SessionUser struct {
	IsAdmin   bool   `json:"isAdmin"`
	LoginTime string `json:"loginTime"`
}

// Service validates the admin password and issues access tokens.
type Service struct {
	tokens            *sec.TokenService
	adminPasswordHash string
	logger            *slog.Logger
}

// NewService constructs a new [Service].
func NewService(tokens *sec.TokenService, adminPasswordHash string, logger *slog.Logger) *Service {
	return &Service{
		tokens:            tokens,
		adminPasswordHash: adminPasswordHash,
		logger:            logger,
	}
}

// Login compares the supplied password against the configured hash and issues
// a signed admin token on success.
func (service *Service) Login(password string) (*Session, error) {
	if password == "" {
		return nil, apperr.BadRequest("Password is required")
	}

	if !sec.CheckPasswordHash(password, service.adminPasswordHash) {
		service.logger.Warn("admin_login_failed")
		return nil, apperr.Unauthorized("Invalid password")
	}

	token, err := service.tokens.GenerateAdminToken(constants.AdminTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("admin_login_succeeded")

	return &Session{
		Token: token,
		User: SessionUser{
			IsAdmin:   true,
			LoginTime: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
