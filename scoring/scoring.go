// Package scoring implements the lead qualification score and priority
// classifier. Scoring is additive over independent weighted factors and is
// deterministic: the same lead attributes always produce the same score and
// breakdown, which is what makes batch re-processing idempotent.
package scoring

import (
	"strconv"
	"strings"

	"leadfinder/models"

	"github.com/badoux/checkmail"
)

// Factor categories, in the fixed order they appear in a breakdown.
const (
	CategoryCompanySize = "company_size"
	CategoryBudget      = "budget"
	CategoryIndustry    = "industry"
	CategoryEmail       = "email"
)

// Priority thresholds. Inclusive lower bounds: 70 is HIGH, 40 is MEDIUM.
const (
	HighPriorityThreshold   = 70
	MediumPriorityThreshold = 40
)

// MaxScore caps the total after summing all factors.
const MaxScore = 100

// companySizePoints maps the normalized company_size value to its weight.
var companySizePoints = map[string]int{
	"enterprise": 30,
	"large":      20,
	"medium":     10,
	"small":      5,
}

// budgetTiers are evaluated top-down; the first threshold the budget
// meets wins.
var budgetTiers = []struct {
	Min    float64
	Points int
}{
	{100000, 30},
	{50000, 20},
	{10000, 10},
}

// targetIndustries is the allow-list of high-value industries. Matching is
// substring-based on the lowercased industry, so "Financial Services"
// matches "finance"-adjacent entries the same way free-form CRM input does.
var targetIndustries = []string{"technology", "finance", "healthcare"}

const (
	industryPoints   = 15
	validEmailPoints = 10
)

// Score computes the qualification score for a lead together with its
// ordered breakdown. Factors contributing zero points are omitted from the
// breakdown; the points of the returned factors always sum to the returned
// total, which is clamped to [0, MaxScore].
func Score(lead models.Lead) (int, []models.ScoreFactor) {
	total := 0
	breakdown := make([]models.ScoreFactor, 0, 4)

	add := func(category string, points int) {
		if points == 0 {
			return
		}
		total += points
		breakdown = append(breakdown, models.ScoreFactor{Category: category, Points: points})
	}

	add(CategoryCompanySize, scoreCompanySize(lead.CompanySize))
	add(CategoryBudget, scoreBudget(lead.Budget))
	add(CategoryIndustry, scoreIndustry(lead.Industry))
	add(CategoryEmail, scoreEmail(lead.Email))

	if total > MaxScore {
		// Clamp and absorb the overshoot from the tail of the breakdown so
		// its points still sum to the total. Unreachable with the current
		// weight table (max 85) but the invariant must survive retuning.
		overshoot := total - MaxScore
		total = MaxScore
		for i := len(breakdown) - 1; i >= 0 && overshoot > 0; i-- {
			if breakdown[i].Points > overshoot {
				breakdown[i].Points -= overshoot
				overshoot = 0
				break
			}
			overshoot -= breakdown[i].Points
			breakdown = breakdown[:i]
		}
	}

	return total, breakdown
}

// Classify maps a score to its priority tier.
func Classify(score int) string {
	switch {
	case score >= HighPriorityThreshold:
		return models.PriorityHigh
	case score >= MediumPriorityThreshold:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func scoreCompanySize(size string) int {
	return companySizePoints[strings.ToLower(strings.TrimSpace(size))]
}

func scoreBudget(budget float64) int {
	for _, tier := range budgetTiers {
		if budget >= tier.Min {
			return tier.Points
		}
	}
	return 0
}

func scoreIndustry(industry string) int {
	ind := strings.ToLower(strings.TrimSpace(industry))
	if ind == "" {
		return 0
	}
	for _, target := range targetIndustries {
		if strings.Contains(ind, target) {
			return industryPoints
		}
	}
	return 0
}

func scoreEmail(email string) int {
	if checkmail.ValidateFormat(email) == nil {
		return validEmailPoints
	}
	return 0
}

// ParseBudget converts sloppy currency input ("$75,000 ") to a number.
// Unparseable or negative values become 0 rather than rejecting the lead.
func ParseBudget(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
