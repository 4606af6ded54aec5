package scoring

import (
	"testing"

	"leadfinder/models"

	"github.com/google/go-cmp/cmp"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		lead          models.Lead
		wantTotal     int
		wantBreakdown []models.ScoreFactor
	}{
		{
			name: "enterprise target industry high budget",
			lead: models.Lead{
				Email:       "emily@finedge.com",
				CompanySize: "enterprise",
				Industry:    "finance",
				Budget:      120000,
			},
			wantTotal: 85,
			wantBreakdown: []models.ScoreFactor{
				{Category: CategoryCompanySize, Points: 30},
				{Category: CategoryBudget, Points: 30},
				{Category: CategoryIndustry, Points: 15},
				{Category: CategoryEmail, Points: 10},
			},
		},
		{
			name: "medium company mid budget healthcare",
			lead: models.Lead{
				Email:       "sarah@medisure.com",
				CompanySize: "medium",
				Industry:    "healthcare",
				Budget:      55000,
			},
			wantTotal: 55,
			wantBreakdown: []models.ScoreFactor{
				{Category: CategoryCompanySize, Points: 10},
				{Category: CategoryBudget, Points: 20},
				{Category: CategoryIndustry, Points: 15},
				{Category: CategoryEmail, Points: 10},
			},
		},
		{
			name: "small company off-list industry",
			lead: models.Lead{
				Email:       "robert@localshop.com",
				CompanySize: "small",
				Industry:    "retail",
				Budget:      8000,
			},
			wantTotal: 15,
			wantBreakdown: []models.ScoreFactor{
				{Category: CategoryCompanySize, Points: 5},
				{Category: CategoryEmail, Points: 10},
			},
		},
		{
			name:          "nothing scores",
			lead:          models.Lead{Email: "", CompanySize: "startup", Industry: "", Budget: 0},
			wantTotal:     0,
			wantBreakdown: []models.ScoreFactor{},
		},
		{
			name: "industry substring match and size normalization",
			lead: models.Lead{
				Email:       "dana@cloudworks.io",
				CompanySize: " Large ",
				Industry:    "Financial Technology",
				Budget:      10000,
			},
			wantTotal: 55,
			wantBreakdown: []models.ScoreFactor{
				{Category: CategoryCompanySize, Points: 20},
				{Category: CategoryBudget, Points: 10},
				{Category: CategoryIndustry, Points: 15},
				{Category: CategoryEmail, Points: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, breakdown := Score(tt.lead)
			if total != tt.wantTotal {
				t.Errorf("Score() total = %d, want %d", total, tt.wantTotal)
			}
			if diff := cmp.Diff(tt.wantBreakdown, breakdown); diff != "" {
				t.Errorf("Score() breakdown mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScoreBreakdownSumsToTotal(t *testing.T) {
	leads := []models.Lead{
		{Email: "a@example.com", CompanySize: "enterprise", Industry: "technology", Budget: 250000},
		{Email: "b@example.com", CompanySize: "medium", Industry: "logistics", Budget: 49999},
		{Email: "not-an-email", CompanySize: "small", Industry: "healthcare", Budget: 0},
		{},
	}

	for _, lead := range leads {
		total, breakdown := Score(lead)
		sum := 0
		for _, factor := range breakdown {
			sum += factor.Points
		}
		if sum != total {
			t.Errorf("breakdown sum %d != total %d for lead %+v", sum, total, lead)
		}
		if total < 0 || total > MaxScore {
			t.Errorf("total %d outside [0, %d] for lead %+v", total, MaxScore, lead)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	lead := models.Lead{
		Email:       "john@techcorp.com",
		CompanySize: "enterprise",
		Industry:    "technology",
		Budget:      75000,
	}

	total1, breakdown1 := Score(lead)
	total2, breakdown2 := Score(lead)

	if total1 != total2 {
		t.Errorf("repeated Score() totals differ: %d vs %d", total1, total2)
	}
	if diff := cmp.Diff(breakdown1, breakdown2); diff != "" {
		t.Errorf("repeated Score() breakdowns differ:\n%s", diff)
	}
}

func TestScoreBudgetTiers(t *testing.T) {
	tests := []struct {
		budget float64
		want   int
	}{
		{0, 0},
		{9999, 0},
		{10000, 10},
		{49999, 10},
		{50000, 20},
		{99999, 20},
		{100000, 30},
		{1000000, 30},
	}

	for _, tt := range tests {
		if got := scoreBudget(tt.budget); got != tt.want {
			t.Errorf("scoreBudget(%v) = %d, want %d", tt.budget, got, tt.want)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, models.PriorityLow},
		{39, models.PriorityLow},
		{40, models.PriorityMedium},
		{69, models.PriorityMedium},
		{70, models.PriorityHigh},
		{100, models.PriorityHigh},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"75000", 75000},
		{"$75,000", 75000},
		{" $120,000.50 ", 120000.50},
		{"", 0},
		{"n/a", 0},
		{"-500", 0},
	}

	for _, tt := range tests {
		if got := ParseBudget(tt.raw); got != tt.want {
			t.Errorf("ParseBudget(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
