package stats

import (
	"testing"

	"leadfinder/models"

	"github.com/google/go-cmp/cmp"
)

func TestComputeEmptyCollection(t *testing.T) {
	got := Compute(nil)
	want := Snapshot{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compute(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeMixedCollection(t *testing.T) {
	leads := []models.Lead{
		{Score: 85, Priority: models.PriorityHigh, EmailSent: true},
		{Score: 55, Priority: models.PriorityMedium, EmailSent: true},
		{Score: 15, Priority: models.PriorityLow},
	}

	got := Compute(leads)
	want := Snapshot{
		TotalLeads:   3,
		High:         1,
		Medium:       1,
		Low:          1,
		EmailsSent:   2,
		AverageScore: 52, // round(155 / 3)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeUnprocessedLeadsCountAsLow(t *testing.T) {
	got := Compute([]models.Lead{{}, {}})

	if got.Low != 2 {
		t.Errorf("Low = %d, want 2 (unset priority defaults to LOW)", got.Low)
	}
	if got.AverageScore != 0 {
		t.Errorf("AverageScore = %d, want 0", got.AverageScore)
	}
}

func TestComputeAverageRounds(t *testing.T) {
	leads := []models.Lead{{Score: 1}, {Score: 2}} // mean 1.5 rounds up
	if got := Compute(leads).AverageScore; got != 2 {
		t.Errorf("AverageScore = %d, want 2", got)
	}
}
