package pipeline

import (
	"errors"
	"testing"

	"leadfinder/models"

	"github.com/google/go-cmp/cmp"
)

type recordedEvent struct {
	EventType string
	Status    string
	Data      models.EventData
}

type fakeRecorder struct {
	events []recordedEvent
}

func (r *fakeRecorder) Record(eventType, status string, data models.EventData) {
	r.events = append(r.events, recordedEvent{EventType: eventType, Status: status, Data: data})
}

func (r *fakeRecorder) ofType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, e := range r.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(lead *models.Lead) error {
	return errors.New("smtp unreachable")
}

func newTestProcessor(recorder *fakeRecorder) *Processor {
	return NewProcessor(NewMockDispatcher(nil), recorder, nil)
}

func TestProcessEmptyBatch(t *testing.T) {
	recorder := &fakeRecorder{}
	processor := newTestProcessor(recorder)

	_, result := processor.Process(nil)

	if result.TotalLeads != 0 || result.EmailsSent != 0 {
		t.Errorf("result = %+v, want zero counts", result)
	}
	if len(recorder.events) != 1 {
		t.Fatalf("recorded %d events, want exactly 1", len(recorder.events))
	}

	event := recorder.events[0]
	if event.EventType != models.EventLeadsProcessed {
		t.Errorf("event type = %s, want %s", event.EventType, models.EventLeadsProcessed)
	}
	wantData := models.EventData{"total_leads": 0, "emails_sent": 0}
	if diff := cmp.Diff(wantData, event.Data); diff != "" {
		t.Errorf("event data mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessMixedBatch(t *testing.T) {
	recorder := &fakeRecorder{}
	processor := newTestProcessor(recorder)

	leads := []models.Lead{
		{Name: "Emily", Email: "emily@finedge.com", CompanySize: "enterprise", Industry: "finance", Budget: 120000},
		{Name: "Sarah", Email: "sarah@medisure.com", CompanySize: "medium", Industry: "healthcare", Budget: 55000},
		{Name: "Robert", Email: "robert@localshop.com", CompanySize: "small", Industry: "retail", Budget: 8000},
	}

	processed, result := processor.Process(leads)

	if result.TotalLeads != 3 {
		t.Errorf("TotalLeads = %d, want 3", result.TotalLeads)
	}
	if result.EmailsSent != 2 {
		t.Errorf("EmailsSent = %d, want 2", result.EmailsSent)
	}

	wantPriorities := []string{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}
	wantSent := []bool{true, true, false}
	for i, lead := range processed {
		if lead.Priority != wantPriorities[i] {
			t.Errorf("lead %s priority = %s, want %s", lead.Name, lead.Priority, wantPriorities[i])
		}
		if lead.EmailSent != wantSent[i] {
			t.Errorf("lead %s email_sent = %t, want %t", lead.Name, lead.EmailSent, wantSent[i])
		}
		if lead.Score == 0 && lead.Name != "Robert" {
			t.Errorf("lead %s has no score after processing", lead.Name)
		}

		sum := 0
		for _, factor := range lead.Breakdown {
			sum += factor.Points
		}
		if sum != lead.Score {
			t.Errorf("lead %s breakdown sum %d != score %d", lead.Name, sum, lead.Score)
		}
	}

	if got := len(recorder.ofType(models.EventLeadScored)); got != 3 {
		t.Errorf("lead_scored events = %d, want 3", got)
	}
	if got := len(recorder.ofType(models.EventEmailSent)); got != 2 {
		t.Errorf("email_sent events = %d, want 2", got)
	}

	summaries := recorder.ofType(models.EventLeadsProcessed)
	if len(summaries) != 1 {
		t.Fatalf("leads_processed events = %d, want 1", len(summaries))
	}
	wantData := models.EventData{"total_leads": 3, "emails_sent": 2}
	if diff := cmp.Diff(wantData, summaries[0].Data); diff != "" {
		t.Errorf("summary data mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessEmailSentEventCarriesLeadName(t *testing.T) {
	recorder := &fakeRecorder{}
	processor := newTestProcessor(recorder)

	processor.Process([]models.Lead{
		{Name: "Emily", Email: "emily@finedge.com", CompanySize: "enterprise", Industry: "finance", Budget: 120000},
	})

	sent := recorder.ofType(models.EventEmailSent)
	if len(sent) != 1 {
		t.Fatalf("email_sent events = %d, want 1", len(sent))
	}
	if sent[0].Data["lead_name"] != "Emily" {
		t.Errorf("lead_name = %v, want Emily", sent[0].Data["lead_name"])
	}
}

// Re-processing an already-scored batch must land on the same scores,
// priorities and dispatch decisions.
func TestProcessIdempotent(t *testing.T) {
	leads := []models.Lead{
		{Name: "Emily", Email: "emily@finedge.com", CompanySize: "enterprise", Industry: "finance", Budget: 120000},
		{Name: "Robert", Email: "robert@localshop.com", CompanySize: "small", Industry: "retail", Budget: 8000},
	}

	first, firstResult := newTestProcessor(&fakeRecorder{}).Process(leads)

	// Snapshot before the second pass: Process mutates the slice in place.
	type outcome struct {
		Score     int
		Breakdown []models.ScoreFactor
		Priority  string
		EmailSent bool
	}
	snapshot := make([]outcome, len(first))
	for i, lead := range first {
		snapshot[i] = outcome{
			Score:     lead.Score,
			Breakdown: append([]models.ScoreFactor(nil), lead.Breakdown...),
			Priority:  lead.Priority,
			EmailSent: lead.EmailSent,
		}
	}

	second, secondResult := newTestProcessor(&fakeRecorder{}).Process(first)

	for i, lead := range second {
		got := outcome{
			Score:     lead.Score,
			Breakdown: lead.Breakdown,
			Priority:  lead.Priority,
			EmailSent: lead.EmailSent,
		}
		if diff := cmp.Diff(snapshot[i], got); diff != "" {
			t.Errorf("lead %s changed on re-processing (-first +second):\n%s", lead.Name, diff)
		}
	}
	if firstResult != secondResult {
		t.Errorf("results differ: %+v vs %+v", firstResult, secondResult)
	}
}

func TestProcessDispatchFailureDoesNotMarkSent(t *testing.T) {
	recorder := &fakeRecorder{}
	processor := NewProcessor(failingDispatcher{}, recorder, nil)

	processed, result := processor.Process([]models.Lead{
		{Name: "Emily", Email: "emily@finedge.com", CompanySize: "enterprise", Industry: "finance", Budget: 120000},
	})

	if result.EmailsSent != 0 {
		t.Errorf("EmailsSent = %d, want 0", result.EmailsSent)
	}
	if processed[0].EmailSent {
		t.Error("lead marked email_sent despite dispatch failure")
	}
	if processed[0].Score == 0 {
		t.Error("scoring should still apply when dispatch fails")
	}

	sent := recorder.ofType(models.EventEmailSent)
	if len(sent) != 1 || sent[0].Status != models.StatusError {
		t.Errorf("expected one error-status email_sent event, got %+v", sent)
	}
}
