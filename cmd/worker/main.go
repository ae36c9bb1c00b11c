package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"core_site_echo/internal/config"
	"core_site_echo/internal/services"
	"core_site_echo/internal/tasks"
)

func main() {
	cfg := config.Load()

	// Initialize Database
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	email := services.NewEmailService()
	if !email.Configured() {
		log.Println("Warning: SMTP not configured, email notifications and digests are skipped")
	}
	whatsapp := services.NewWahaService()

	// Initialize Task Registry
	tasks.DefineTasks(tasks.Deps{
		Notifier:         services.NewSalesNotifier(email, whatsapp, cfg.SalesEmail, cfg.SalesWhatsapp),
		Email:            email,
		DigestRecipients: cfg.DigestRecipients,
	})
	log.Printf("Registered tasks: %v", tasks.GlobalRegistry.Names())

	runner := tasks.NewRunner(db, tasks.GlobalRegistry)

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	process := func() {
		if err := runner.ProcessDue(ctx); err != nil {
			log.Printf("Error processing tasks: %v", err)
		}
	}

	log.Printf("Worker started, checking every %s", cfg.WorkerInterval)
	process()

	for {
		select {
		case <-ticker.C:
			process()
		case <-ctx.Done():
			return
		}
	}
}
