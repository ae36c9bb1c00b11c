package models

import (
	"time"

	"gorm.io/gorm"
)

// LeadStatus tracks how far sales has followed up on a demo request
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusScheduled LeadStatus = "scheduled"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadStatuses lists every status in pipeline order
var LeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusScheduled, LeadStatusClosed}

// Valid reports whether s is a known status
func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DemoRequest is a demo request submitted through the site
type DemoRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UUID    string `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Name    string `gorm:"type:varchar(120)" json:"name"`
	Email   string `gorm:"type:varchar(254);index" json:"email"`
	Company string `gorm:"type:varchar(160)" json:"company"`
	Role    string `gorm:"type:varchar(120)" json:"role"`
	Phone   string `gorm:"type:varchar(40)" json:"phone"`
	Message string `gorm:"type:text" json:"message"`

	// SourcePath is the page the visitor was on when submitting
	SourcePath string     `gorm:"type:varchar(255)" json:"source_path"`
	Status     LeadStatus `gorm:"type:varchar(20);default:'new';index" json:"status"`
	NotifiedAt *time.Time `json:"notified_at"`
}
