package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"core_site_echo/internal/models"
)

// EmailSender is satisfied by EmailService
type EmailSender interface {
	Configured() bool
	SendEmail(ctx context.Context, to []string, subject, body string) error
}

// TextSender is satisfied by WahaService
type TextSender interface {
	Configured() bool
	SendText(ctx context.Context, chatID, text string) error
}

// SalesNotifier tells the sales team about new demo requests by email and WhatsApp
type SalesNotifier struct {
	email      EmailSender
	whatsapp   TextSender
	salesEmail string
	salesChat  string
}

// NewSalesNotifier sends to salesEmail and salesChat. Either channel may be left unconfigured.
func NewSalesNotifier(email EmailSender, whatsapp TextSender, salesEmail, salesChat string) *SalesNotifier {
	return &SalesNotifier{email: email, whatsapp: whatsapp, salesEmail: salesEmail, salesChat: salesChat}
}

// NotifyLead sends the lead on every configured channel. With no channel
// configured the lead is only logged.
func (n *SalesNotifier) NotifyLead(ctx context.Context, lead models.DemoRequest) error {
	var errs []error
	sent := 0

	if n.salesEmail != "" && n.email != nil && n.email.Configured() {
		subject := fmt.Sprintf("Demo request: %s (%s)", lead.Company, lead.Name)
		if err := n.email.SendEmail(ctx, []string{n.salesEmail}, subject, LeadSummary(lead)); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		} else {
			sent++
		}
	}

	if n.salesChat != "" && n.whatsapp != nil && n.whatsapp.Configured() {
		text := fmt.Sprintf("New demo request from %s at %s (%s)", lead.Name, lead.Company, lead.Email)
		if err := n.whatsapp.SendText(ctx, n.salesChat, text); err != nil {
			errs = append(errs, fmt.Errorf("whatsapp: %w", err))
		} else {
			sent++
		}
	}

	if sent == 0 && len(errs) == 0 {
		log.Printf("No sales notification channel configured; demo request %s from %s <%s>", lead.UUID, lead.Name, lead.Email)
		return nil
	}
	// one delivered channel is enough
	if sent > 0 {
		for _, err := range errs {
			log.Printf("Partial sales notification failure for %s: %v", lead.UUID, err)
		}
		return nil
	}
	return errors.Join(errs...)
}

// LeadSummary formats a demo request as plain text
func LeadSummary(lead models.DemoRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:    %s\n", lead.Name)
	fmt.Fprintf(&b, "Email:   %s\n", lead.Email)
	fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	if lead.Role != "" {
		fmt.Fprintf(&b, "Role:    %s\n", lead.Role)
	}
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", lead.Phone)
	}
	if lead.SourcePath != "" {
		fmt.Fprintf(&b, "Page:    %s\n", lead.SourcePath)
	}
	if lead.UUID != "" {
		fmt.Fprintf(&b, "Ref:     %s\n", lead.UUID)
	}
	if lead.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", lead.Message)
	}
	return b.String()
}
