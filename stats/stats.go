// Package stats derives dashboard summary numbers from the current lead
// set. Nothing is cached or persisted; every call reflects the collection
// it is handed.
package stats

import (
	"math"

	"leadfinder/models"
)

type Snapshot struct {
	TotalLeads   int `json:"total_leads"`
	High         int `json:"high"`
	Medium       int `json:"medium"`
	Low          int `json:"low"`
	EmailsSent   int `json:"emails_sent"`
	AverageScore int `json:"average_score"`
}

// Compute builds a snapshot from the given leads. An empty collection
// yields an all-zero snapshot, not an error.
func Compute(leads []models.Lead) Snapshot {
	snapshot := Snapshot{TotalLeads: len(leads)}
	if len(leads) == 0 {
		return snapshot
	}

	scoreSum := 0
	for _, lead := range leads {
		scoreSum += lead.Score
		switch lead.Priority {
		case models.PriorityHigh:
			snapshot.High++
		case models.PriorityMedium:
			snapshot.Medium++
		default:
			snapshot.Low++
		}
		if lead.EmailSent {
			snapshot.EmailsSent++
		}
	}

	snapshot.AverageScore = int(math.Round(float64(scoreSum) / float64(len(leads))))
	return snapshot
}
