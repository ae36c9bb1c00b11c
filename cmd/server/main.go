package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"gorm.io/gorm"

	"core_site_echo/internal/config"
	"core_site_echo/internal/content"
	"core_site_echo/internal/server"
	"core_site_echo/internal/services"
	"core_site_echo/internal/session"
	"core_site_echo/internal/site"
)

func main() {
	cfg := config.Load()

	library, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load page content: %v", err)
	}

	// Initialize Firebase
	var authClient *auth.Client
	authClient, err = services.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath, cfg.FirebaseProjectID)
	if err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Admin console sign in will not work until valid credentials are provided")
		authClient = nil
	}

	// Initialize Database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL, !cfg.IsProduction())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Run auto-migration
		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, demo requests are sent to sales directly and not stored")
	}

	// Initialize Redis
	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL, "core_site")
		if err != nil {
			log.Printf("Warning: Redis unavailable: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	} else {
		log.Println("Warning: REDIS_URL not set, sessions are kept in memory and rate limiting is disabled")
	}

	var sessions session.Store
	if cache != nil {
		sessions = session.NewRedisStore(cache, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	notifier := services.NewSalesNotifier(services.NewEmailService(), services.NewWahaService(), cfg.SalesEmail, cfg.SalesWhatsapp)
	leads := services.NewLeadService(db, cache, notifier, cfg.DemoRateLimit, cfg.DemoRateWindow)

	e := server.New(server.Deps{
		Config:   cfg,
		Registry: site.Pages,
		Content:  library,
		Sessions: sessions,
		Leads:    leads,
		Auth:     authClient,
	})

	// Start server
	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Printf("Server stopped: %v", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
