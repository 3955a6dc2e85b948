// Copyright (c) 2026 PalText. All rights reserved.

// Package api assembles the HTTP surface of the PalText backend.
//
// It owns the router, the middleware chain, and the server lifecycle;
// everything domain-specific lives in the feature packages it mounts.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redislib "github.com/redis/go-redis/v9"

	"github.com/paltextai/backend/internal/auth"
	"github.com/paltextai/backend/internal/blog"
	"github.com/paltextai/backend/internal/platform/config"
	"github.com/paltextai/backend/internal/platform/constants"
	"github.com/paltextai/backend/internal/platform/middleware"
	"github.com/paltextai/backend/internal/platform/sec"
	"github.com/paltextai/backend/internal/sitemap"
	"github.com/paltextai/backend/internal/upload"
	"github.com/paltextai/backend/internal/waitlist"
)

// Server wires the feature handlers into one HTTP server.
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	redis      *redislib.Client
	tokens     *sec.TokenService
	httpServer *http.Server
	startedAt  time.Time

	blogHandler      *blog.Handler
	blogAdminHandler *blog.AdminHandler
	authHandler      *auth.Handler
	waitlistHandler  *waitlist.Handler
	uploadHandler    *upload.Handler
	sitemapHandler   *sitemap.Handler
}

// NewServer constructs the full application. The redis client may be nil.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	redisClient *redislib.Client,
	tokens *sec.TokenService,
) *Server {
	blogRepository := blog.NewPostgresRepository(pool)

	var blogCache blog.Cache
	if redisClient != nil {
		blogCache = blog.NewRedisCache(redisClient)
	}
	blogService := blog.NewService(blogRepository, blogCache, logger)

	authService := auth.NewService(tokens, cfg.AdminPasswordHash, logger)

	var mailer waitlist.Mailer
	if cfg.BrevoEnabled() {
		mailer = waitlist.NewBrevoClient(waitlist.BrevoConfig{
			APIKey:      cfg.BrevoAPIKey,
			ListID:      cfg.BrevoWaitlistID,
			SenderEmail: cfg.BrevoSenderEmail,
			SenderName:  cfg.BrevoSenderName,
		})
	}
	waitlistService := waitlist.NewService(waitlist.NewPostgresRepository(pool), mailer, logger)

	var imageHost upload.ImageHost
	if cfg.CloudinaryEnabled() {
		imageHost = upload.NewCloudinaryClient(upload.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		})
	}
	uploadService := upload.NewService(imageHost, logger)

	sitemapService := sitemap.NewService(blogRepository, cfg.SiteBaseURL, cfg.SitemapPath, logger)

	return &Server{
		config:    cfg,
		logger:    logger,
		pool:      pool,
		redis:     redisClient,
		tokens:    tokens,
		startedAt: time.Now(),

		blogHandler:      blog.NewHandler(blogService),
		blogAdminHandler: blog.NewAdminHandler(blogService),
		authHandler:      auth.NewHandler(authService),
		waitlistHandler:  waitlist.NewHandler(waitlistService),
		uploadHandler:    upload.NewHandler(uploadService),
		sitemapHandler:   sitemap.NewHandler(sitemapService),
	}
}

// Router builds the full route tree with the shared middleware chain.
func (server *Server) Router(ctx context.Context) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(server.logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(server.logger))
	router.Use(middleware.Authenticate(server.tokens))
	router.Use(middleware.CORS(server.config))
	router.Use(chimw.CleanPath)

	router.Route("/api", func(api chi.Router) {
		api.Get("/health", server.handleHealth)

		api.Mount("/auth", server.authHandler.Routes())
		api.Mount("/waitlist", server.waitlistHandler.Routes())
		api.Mount("/sitemap", server.sitemapHandler.Routes())

		api.Route("/blog", func(blogRouter chi.Router) {
			blogRouter.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin)
				admin.Mount("/", server.blogAdminHandler.Routes())
			})
			blogRouter.Mount("/", server.blogHandler.Routes())
		})

		api.Route("/upload", func(uploadRouter chi.Router) {
			uploadRouter.Use(middleware.RequireAdmin)
			uploadRouter.Mount("/", server.uploadHandler.Routes())
		})
	})

	router.Get("/ready", server.handleReadiness)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// Start runs the HTTP server until the listener fails or Shutdown is called.
func (server *Server) Start(ctx context.Context) error {
	server.httpServer = &http.Server{
		Addr:              ":" + server.config.ServerPort,
		Handler:           server.Router(ctx),
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}

	server.logger.Info("server_listening",
		slog.String("port", server.config.ServerPort),
		slog.String("environment", server.config.Environment),
	)

	return server.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (server *Server) Shutdown(ctx context.Context) error {
	if server.httpServer == nil {
		return nil
	}
	return server.httpServer.Shutdown(ctx)
}
