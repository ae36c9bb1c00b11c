package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"core_site_echo/internal/demo"
	"core_site_echo/internal/models"
)

// NotifySalesTask is the scheduled task that delivers a stored demo request to sales
const NotifySalesTask = "notify_sales"

// ErrTooManyRequests is returned when an email address submits too often
var ErrTooManyRequests = demo.Message("You've already sent several requests. We'll be in touch soon.")

// LeadNotifier delivers a demo request to the sales team
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead models.DemoRequest) error
}

// LeadService accepts demo requests from the site
type LeadService struct {
	db       *gorm.DB
	cache    *RedisCache
	notifier LeadNotifier

	rateLimit  int
	rateWindow time.Duration
	maxAttempt int
}

// NewLeadService stores leads in db and queues their notification for the worker.
// Without db the notifier is called directly. Without cache there is no rate limit.
func NewLeadService(db *gorm.DB, cache *RedisCache, notifier LeadNotifier, rateLimit int, rateWindow time.Duration) *LeadService {
	return &LeadService{
		db:         db,
		cache:      cache,
		notifier:   notifier,
		rateLimit:  rateLimit,
		rateWindow: rateWindow,
		maxAttempt: 3,
	}
}

// Submit implements demo.Submitter
func (s *LeadService) Submit(ctx context.Context, fields demo.Fields) error {
	return s.SubmitFrom(ctx, "", fields)
}

// SubmitFrom records a demo request made on sourcePath
func (s *LeadService) SubmitFrom(ctx context.Context, sourcePath string, fields demo.Fields) error {
	if err := demo.Validate(fields); err != nil {
		return err
	}

	lead := models.DemoRequest{
		UUID:       uuid.New().String(),
		Name:       fields[demo.FieldName],
		Email:      strings.ToLower(fields[demo.FieldEmail]),
		Company:    fields[demo.FieldCompany],
		Role:       fields[demo.FieldRole],
		Phone:      fields[demo.FieldPhone],
		Message:    fields[demo.FieldMessage],
		SourcePath: sourcePath,
		Status:     models.LeadStatusNew,
	}

	if err := s.checkRate(ctx, lead.Email); err != nil {
		return err
	}

	if s.db == nil {
		if s.notifier == nil {
			return fmt.Errorf("lead intake is not configured")
		}
		if err := s.notifier.NotifyLead(ctx, lead); err != nil {
			return fmt.Errorf("notify sales: %w", err)
		}
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lead).Error; err != nil {
			return fmt.Errorf("store demo request: %w", err)
		}
		task := models.ScheduledTask{
			TaskName:   NotifySalesTask,
			Arguments:  map[string]interface{}{"lead_id": lead.ID},
			Due:        time.Now(),
			Status:     models.ScheduledTaskStatusActive,
			TaskType:   models.ScheduledTaskTypeOneTime,
			MaxAttempt: s.maxAttempt,
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("queue sales notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, leadStatsKey)
	}
	return nil
}

func (s *LeadService) checkRate(ctx context.Context, email string) error {
	if s.cache == nil || s.rateLimit <= 0 {
		return nil
	}
	n, err := s.cache.IncrementWithin(ctx, "demo:rate:"+email, s.rateWindow)
	if err != nil {
		// a broken limiter must not block lead intake
		return nil
	}
	if n > int64(s.rateLimit) {
		return ErrTooManyRequests
	}
	return nil
}

const leadStatsKey = "leads:stats"

// LeadStats counts demo requests per status
type LeadStats struct {
	Total    int64                       `json:"total"`
	ByStatus map[models.LeadStatus]int64 `json:"by_status"`
}

// Stats returns status counts, cached for a minute when Redis is available
func (s *LeadService) Stats(ctx context.Context) (LeadStats, error) {
	return GetOrSet(s.cache, ctx, leadStatsKey, time.Minute, func() (LeadStats, error) {
		stats := LeadStats{ByStatus: make(map[models.LeadStatus]int64)}
		if s.db == nil {
			return stats, nil
		}
		var rows []struct {
			Status models.LeadStatus
			Count  int64
		}
		err := s.db.WithContext(ctx).Model(&models.DemoRequest{}).
			Select("status, count(*) as count").
			Group("status").
			Scan(&rows).Error
		if err != nil {
			return stats, err
		}
		for _, r := range rows {
			stats.ByStatus[r.Status] = r.Count
			stats.Total += r.Count
		}
		return stats, nil
	})
}

// List returns the most recent demo requests, optionally filtered by status
func (s *LeadService) List(ctx context.Context, status models.LeadStatus, limit int) ([]models.DemoRequest, error) {
	if s.db == nil {
		return nil, nil
	}
	q := s.db.WithContext(ctx).Order("created_at desc").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var leads []models.DemoRequest
	if err := q.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Get returns one demo request
func (s *LeadService) Get(ctx context.Context, id uint) (models.DemoRequest, error) {
	var lead models.DemoRequest
	if s.db == nil {
		return lead, gorm.ErrRecordNotFound
	}
	err := s.db.WithContext(ctx).First(&lead, id).Error
	return lead, err
}

// UpdateStatus moves a demo request to another pipeline status
func (s *LeadService) UpdateStatus(ctx context.Context, id uint, status models.LeadStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown lead status %q", status)
	}
	if s.db == nil {
		return fmt.Errorf("lead storage is not configured")
	}
	res := s.db.WithContext(ctx).Model(&models.DemoRequest{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, leadStatsKey)
	}
	return nil
}
