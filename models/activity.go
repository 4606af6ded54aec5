package models

import (
	"gorm.io/gorm"
)

// Activity event types
const (
	EventCSVUpload      = "csv_upload"
	EventLeadsProcessed = "leads_processed"
	EventLeadScored     = "lead_scored"
	EventEmailSent      = "email_sent"
	EventError          = "error"
)

// Activity event statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusWarning = "warning"
)

// EventData holds the event-specific payload of an activity entry
type EventData map[string]interface{}

// ActivityLog is an immutable record of a system event. Entries are
// append-only: nothing updates or deletes a single row, only a full clear.
type ActivityLog struct {
	gorm.Model

	EventType string    `gorm:"not null;index" json:"event_type"`
	Status    string    `gorm:"not null" json:"status"`
	Data      EventData `gorm:"serializer:json" json:"data"`
}
