// Copyright (c) 2026 PalText. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, clients) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the PalText API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional: when empty the API runs without the
	// aggregate cache.
	RedisURL string `env:"REDIS_URL"`

	// Admin authentication
	JWTSecret         string `env:"JWT_SECRET,required"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`

	// Mailing list / transactional email (Brevo). Optional: when the API key
	// is empty the waitlist skips the external calls.
	BrevoAPIKey      string `env:"BREVO_API_KEY"`
	BrevoWaitlistID  int    `env:"BREVO_WAITLIST_ID" envDefault:"2"`
	BrevoSenderEmail string `env:"BREVO_SENDER_EMAIL" envDefault:"hello@paltextai.com"`
	BrevoSenderName  string `env:"BREVO_SENDER_NAME"  envDefault:"PalText Team"`

	// Image hosting (Cloudinary). Optional: absence triggers the base64
	// data-URL fallback on upload.
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`

	// Public site URLs for sitemap generation
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://www.paltextai.com"`
	SitemapPath string `env:"SITEMAP_PATH"  envDefault:"./public/sitemap.xml"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins configured via EXTRA_ORIGINS
// (comma-separated), beyond the first-party site domain.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// BrevoEnabled reports whether the mailing-list integration is configured.
func (c *Config) BrevoEnabled() bool {
	return c.BrevoAPIKey != ""
}
