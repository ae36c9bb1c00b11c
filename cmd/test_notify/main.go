package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"core_site_echo/internal/config"
	"core_site_echo/internal/models"
	"core_site_echo/internal/services"
)

func main() {
	phone := flag.String("phone", "", "WhatsApp number to notify (defaults to SALES_WHATSAPP)")
	email := flag.String("email", "", "Address to notify (defaults to SALES_EMAIL)")
	flag.Parse()

	cfg := config.Load()
	if *phone == "" {
		*phone = cfg.SalesWhatsapp
	}
	if *email == "" {
		*email = cfg.SalesEmail
	}
	if *phone == "" && *email == "" {
		log.Fatal("Please provide -phone or -email, or set SALES_WHATSAPP / SALES_EMAIL")
	}

	notifier := services.NewSalesNotifier(services.NewEmailService(), services.NewWahaService(), *email, *phone)

	lead := models.DemoRequest{
		UUID:       uuid.NewString(),
		Name:       "Test Lead",
		Email:      "test.lead@example.com",
		Company:    "Example Corp",
		Role:       "Platform Engineer",
		Message:    "Test notification, please ignore.",
		SourcePath: "/",
		Status:     models.LeadStatusNew,
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	log.Printf("Sending test lead to email=%q whatsapp=%q", *email, *phone)
	err := notifier.NotifyLead(ctx, lead)
	cancel()
	if err != nil {
		log.Fatalf("Failed to notify: %v", err)
	}

	log.Println("Notification sent successfully!")
}
