// Package activity persists the append-only audit trail consumed by the
// dashboard. Entries are never mutated or individually deleted; retrieval
// is most-recent-first with a bounded limit.
package activity

import (
	"leadfinder/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Logger struct {
	DB *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{DB: db}
}

// Record appends one activity entry. It is best-effort: a failed write is
// logged and dropped, never propagated, because the log is observability
// and must not roll back the mutation it describes.
func (l *Logger) Record(eventType, status string, data models.EventData) {
	entry := models.ActivityLog{
		EventType: eventType,
		Status:    status,
		Data:      data,
	}
	if err := l.DB.Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"event_type": eventType,
			"error":      err.Error(),
		}).Warn("failed to record activity event")
	}
}

// Recent returns the most recent entries, newest first. A non-positive
// limit falls back to DefaultLimit; anything above MaxLimit is capped.
func (l *Logger) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var entries []models.ActivityLog
	err := l.DB.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// Clear removes every entry. The only destructive operation the log allows.
func (l *Logger) Clear() error {
	return l.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.ActivityLog{}).Error
}

// Convenience wrappers for the pipeline stages.

func (l *Logger) LogCSVUpload(filename string, totalLeads int) {
	l.Record(models.EventCSVUpload, models.StatusSuccess, models.EventData{
		"filename":    filename,
		"total_leads": totalLeads,
	})
}

func (l *Logger) LogError(message string, context models.EventData) {
	if context == nil {
		context = models.EventData{}
	}
	context["message"] = message
	l.Record(models.EventError, models.StatusError, context)
}
