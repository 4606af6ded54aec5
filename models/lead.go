package models

import (
	"gorm.io/gorm"
)

// Priority tiers derived from a lead's score
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Lead sources
const (
	SourceCSVUpload = "csv_upload"
	SourceManual    = "manual"
)

// ScoreFactor is one contribution in a lead's score breakdown
type ScoreFactor struct {
	Category string `json:"category"`
	Points   int    `json:"points"`
}

// Lead represents a single prospective customer
type Lead struct {
	gorm.Model

	Email       string  `gorm:"not null;uniqueIndex" json:"email"`
	Name        string  `gorm:"not null" json:"name"`
	Company     string  `json:"company"`
	CompanySize string  `json:"company_size"` // small, medium, large, enterprise
	Industry    string  `json:"industry"`
	Budget      float64 `json:"budget"`

	// Derived fields, populated by batch processing
	Score     int           `gorm:"default:0" json:"score"`
	Breakdown []ScoreFactor `gorm:"serializer:json" json:"breakdown"`
	Priority  string        `gorm:"default:LOW" json:"priority"`
	EmailSent bool          `gorm:"default:false" json:"email_sent"`

	// Metadata
	Source string `json:"source"` // manual, csv_upload
}
