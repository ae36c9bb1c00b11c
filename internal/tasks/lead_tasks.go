package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"core_site_echo/internal/models"
	"core_site_echo/internal/services"
)

// NotifySalesArgs are the arguments of a notify_sales task
type NotifySalesArgs struct {
	LeadID uint `json:"lead_id"`
}

// NotifySalesTaskDef delivers a stored demo request to the sales team
type NotifySalesTaskDef struct {
	Notifier services.LeadNotifier
}

// TaskID returns the unique identifier for this task
func (t *NotifySalesTaskDef) TaskID() string {
	return services.NotifySalesTask
}

// HandleExecution sends the lead and marks it notified
func (t *NotifySalesTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args NotifySalesArgs
	if err := decodeArgs(task, &args); err != nil {
		return nil, err
	}
	if args.LeadID == 0 {
		return nil, fmt.Errorf("lead_id not provided")
	}

	var lead models.DemoRequest
	if err := db.WithContext(ctx).First(&lead, args.LeadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return map[string]interface{}{"status": "skipped", "message": "lead no longer exists"}, nil
		}
		return nil, fmt.Errorf("failed to fetch lead: %w", err)
	}

	if lead.NotifiedAt != nil {
		return map[string]interface{}{"status": "skipped", "message": "already notified"}, nil
	}

	if err := t.Notifier.NotifyLead(ctx, lead); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := db.WithContext(ctx).Model(&lead).Update("notified_at", &now).Error; err != nil {
		log.Printf("Lead %s notified but not marked: %v", lead.UUID, err)
	}

	return map[string]interface{}{
		"status":  "success",
		"lead_id": lead.ID,
	}, nil
}

// LeadDigestArgs are the arguments of a lead_digest task
type LeadDigestArgs struct {
	// Recipients overrides the digest recipients
	Recipients []string `json:"recipients"`
}

// LeadDigestTaskDef emails a summary of demo requests received since the previous run.
// It is meant to be scheduled as a recurring task.
type LeadDigestTaskDef struct {
	Email      services.EmailSender
	Recipients []string
	Now        func() time.Time
}

// TaskID returns the unique identifier for this task
func (t *LeadDigestTaskDef) TaskID() string {
	return "lead_digest"
}

// CreateTask builds a recurring digest starting at first
func (t *LeadDigestTaskDef) CreateTask(first time.Time, rule string) (*models.ScheduledTask, error) {
	return BuildScheduledTask(t.TaskID(), LeadDigestArgs{}, first, &rule, models.ScheduledTaskTypeRecurring, 2)
}

// HandleExecution collects the leads and sends the digest
func (t *LeadDigestTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args LeadDigestArgs
	if err := decodeArgs(task, &args); err != nil {
		return nil, err
	}
	recipients := args.Recipients
	if len(recipients) == 0 {
		recipients = t.Recipients
	}
	if len(recipients) == 0 {
		return map[string]interface{}{"status": "skipped", "message": "no recipients"}, nil
	}

	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	since := now.AddDate(0, 0, -7)
	if task.LastRun != nil {
		since = *task.LastRun
	}

	var leads []models.DemoRequest
	if err := db.WithContext(ctx).Where("created_at > ? AND created_at <= ?", since, now).Order("created_at asc").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}

	subject := fmt.Sprintf("Demo requests digest: %d new since %s", len(leads), since.Format("2006-01-02 15:04"))
	if err := t.Email.SendEmail(ctx, recipients, subject, FormatDigest(leads)); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status": "success",
		"leads":  len(leads),
		"since":  since.Format(time.RFC3339),
	}, nil
}

// FormatDigest renders leads grouped by company
func FormatDigest(leads []models.DemoRequest) string {
	if len(leads) == 0 {
		return "No new demo requests.\n"
	}

	byCompany := make(map[string][]models.DemoRequest)
	for _, l := range leads {
		byCompany[l.Company] = append(byCompany[l.Company], l)
	}
	companies := make([]string, 0, len(byCompany))
	for c := range byCompany {
		companies = append(companies, c)
	}
	sort.Strings(companies)

	var b strings.Builder
	fmt.Fprintf(&b, "%d new demo requests\n", len(leads))
	for _, c := range companies {
		fmt.Fprintf(&b, "\n%s\n", c)
		for _, l := range byCompany[c] {
			fmt.Fprintf(&b, "  - %s <%s> on %s [%s]\n", l.Name, l.Email, l.CreatedAt.Format("Jan 2 15:04"), l.Status)
		}
	}
	return b.String()
}
