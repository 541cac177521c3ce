// Package main is the entry point for the ELV catalog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elvcatalog/internal/cache"
	"elvcatalog/internal/catalog"
	"elvcatalog/internal/config"
	"elvcatalog/internal/database"
	"elvcatalog/internal/handlers"
	"elvcatalog/internal/leads"
	"elvcatalog/internal/middleware"
	"elvcatalog/internal/render"
	"elvcatalog/internal/router"
	"elvcatalog/internal/session"
	"elvcatalog/internal/storage"
	"elvcatalog/internal/store"
	"elvcatalog/web"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	if cfg.IsProduction() {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"storage", cfg.StorageDriver,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create the first admin account (no-op once any user exists).
	if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (admin sessions).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Outside development, session cookies are HTTPS-only.
	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL, !cfg.IsDev())

	assets, err := newAssets(cfg)
	if err != nil {
		slog.Error("failed to initialize asset storage", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	subCategoryStore := store.NewSubCategoryStore(db)
	productStore := store.NewProductStore(db)
	userStore := store.NewUserStore(db)

	catalogSvc := catalog.NewService(categoryStore, subCategoryStore, productStore, assets)
	resolver := catalog.NewResolver(categoryStore, subCategoryStore, productStore)
	leadsSvc := leads.NewService(
		store.NewContactStore(db),
		store.NewInquiryStore(db),
		store.NewSubscriptionStore(db),
		productStore,
	)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()
	leadLimiter := middleware.NewRateLimiter(20, time.Minute)
	defer leadLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Sessions:     sessionStore,
		Catalog:      handlers.NewCatalogAPI(catalogSvc, resolver),
		Leads:        handlers.NewLeadsAPI(leadsSvc),
		Auth:         handlers.NewAuth(sessionStore, userStore),
		Site:         handlers.NewSite(renderer, resolver, leadsSvc),
		Static:       web.Static(),
		LoginLimiter: loginLimiter,
		LeadLimiter:  leadLimiter,
	})

	// WriteTimeout leaves room for multipart uploads relayed to storage.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newAssets builds the configured asset backend. It returns a nil
// interface when uploads are disabled.
func newAssets(cfg *config.Config) (catalog.Assets, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return nil, err
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		return storage.NewS3Assets(client), nil
	case config.StorageCloudinary:
		assets, err := storage.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			return nil, err
		}
		slog.Info("cloudinary storage configured")
		return assets, nil
	default:
		slog.Warn("asset storage not configured, catalog uploads disabled")
		return nil, nil
	}
}
