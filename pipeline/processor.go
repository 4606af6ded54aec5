// Package pipeline orchestrates one "process leads" invocation: scoring,
// priority classification and outreach dispatch over a full lead set.
package pipeline

import (
	"log"

	"leadfinder/models"
	"leadfinder/scoring"

	"github.com/sirupsen/logrus"
)

// Recorder appends activity events. Calls are fire-and-forget: a failed
// log write must never affect the lead mutation it describes.
type Recorder interface {
	Record(eventType, status string, data models.EventData)
}

// Result summarizes one batch invocation.
type Result struct {
	TotalLeads int `json:"total_leads"`
	EmailsSent int `json:"emails_sent"`
}

type Processor struct {
	Dispatcher Dispatcher
	Recorder   Recorder
	Logger     *log.Logger
}

func NewProcessor(dispatcher Dispatcher, recorder Recorder, logger *log.Logger) *Processor {
	return &Processor{
		Dispatcher: dispatcher,
		Recorder:   recorder,
		Logger:     logger,
	}
}

// Process re-scores every lead in the batch, classifies its priority and
// dispatches outreach to HIGH and MEDIUM leads. Scoring is pure, so
// re-processing an already-scored batch is idempotent. The updated leads
// are returned for the caller to commit as one atomic store update.
//
// An empty batch is not an error: it produces a zero Result and still
// records exactly one leads_processed event.
func (p *Processor) Process(leads []models.Lead) ([]models.Lead, Result) {
	result := Result{TotalLeads: len(leads)}

	for i := range leads {
		lead := &leads[i]

		total, breakdown := scoring.Score(*lead)
		lead.Score = total
		lead.Breakdown = breakdown
		lead.Priority = scoring.Classify(total)
		lead.EmailSent = false

		p.Recorder.Record(models.EventLeadScored, models.StatusSuccess, models.EventData{
			"lead_name": lead.Name,
			"score":     lead.Score,
			"priority":  lead.Priority,
		})

		// Dispatch rule: every HIGH or MEDIUM lead in the batch gets
		// outreach, LOW does not.
		if lead.Priority == models.PriorityLow {
			continue
		}

		if err := p.Dispatcher.Dispatch(lead); err != nil {
			logrus.WithFields(logrus.Fields{
				"lead":  lead.Email,
				"error": err.Error(),
			}).Warn("outreach dispatch failed")
			p.Recorder.Record(models.EventEmailSent, models.StatusError, models.EventData{
				"lead_name": lead.Name,
				"error":     err.Error(),
			})
			continue
		}

		lead.EmailSent = true
		result.EmailsSent++
		p.Recorder.Record(models.EventEmailSent, models.StatusSuccess, models.EventData{
			"lead_name": lead.Name,
		})
	}

	p.Recorder.Record(models.EventLeadsProcessed, models.StatusSuccess, models.EventData{
		"total_leads": result.TotalLeads,
		"emails_sent": result.EmailsSent,
	})

	if p.Logger != nil {
		p.Logger.Printf("processed %d leads, %d emails sent", result.TotalLeads, result.EmailsSent)
	}
	return leads, result
}
