// Copyright (c) 2026 PalText. All rights reserved.

// Package waitlist implements the launch mailing-list signup flow.
package waitlist

import (
	"strings"
	"time"
)

// Signup sources accepted from the marketing site. Anything else collapses
// to SourceOther.
const (
	SourceHero  = "hero"
	SourceCTA   = "cta"
	SourceOther = "other"
)

// Entry is a single waitlist signup.
type Entry struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Source         string    `json:"source"`
	BrevoContactID *string   `json:"brevoContactId,omitempty"`
	EmailSent      bool      `json:"emailSent"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Stats summarizes signup volume for the admin dashboard.
type Stats struct {
	Total    int            `json:"total"`
	Today    int            `json:"today"`
	BySource map[string]int `json:"bySource"`
}

// NormalizeEmail lowercases and trims an address for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSource maps free-form source strings onto the known set.
func NormalizeSource(source string) string {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case SourceHero:
		return SourceHero
	case SourceCTA:
		return SourceCTA
	default:
		return SourceOther
	}
}
