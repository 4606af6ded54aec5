// Package ingest turns uploaded CSV content into candidate leads. File-level
// problems (missing columns, unparseable content) reject the whole upload;
// row-level problems only skip the row.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"leadfinder/models"
	"leadfinder/scoring"

	"github.com/badoux/checkmail"
)

// ErrMalformedCSV is wrapped by every file-level ingestion failure.
var ErrMalformedCSV = errors.New("malformed csv")

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{"name", "email", "company", "company_size", "industry", "budget"}

// Parse reads CSV content and returns the leads that survive validation and
// deduplication, plus the number of rows skipped. known holds the normalized
// emails already present in the store; rows matching it, or repeating an
// email earlier in the same file, are skipped rather than overwritten.
func Parse(raw []byte, known map[string]struct{}) ([]models.Lead, int, error) {
	// Strip a UTF-8 BOM so the first header cell compares clean.
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("%w: empty file or no header row", ErrMalformedCSV)
	}

	columns, err := indexColumns(records[0])
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]struct{}, len(known))
	for email := range known {
		seen[strings.ToLower(email)] = struct{}{}
	}

	var leads []models.Lead
	skipped := 0
	for _, row := range records[1:] {
		field := func(name string) string {
			idx := columns[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := field("name")
		email := strings.ToLower(field("email"))

		if name == "" || email == "" || checkmail.ValidateFormat(email) != nil {
			skipped++
			continue
		}
		if _, dup := seen[email]; dup {
			skipped++
			continue
		}
		seen[email] = struct{}{}

		leads = append(leads, models.Lead{
			Name:        name,
			Email:       email,
			Company:     field("company"),
			CompanySize: strings.ToLower(field("company_size")),
			Industry:    field("industry"),
			Budget:      scoring.ParseBudget(field("budget")),
			Priority:    models.PriorityLow,
			Source:      models.SourceCSVUpload,
		})
	}

	return leads, skipped, nil
}

// indexColumns normalizes the header and maps required column names to
// their positions.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrMalformedCSV, strings.Join(missing, ", "))
	}
	return columns, nil
}

// SampleCSV returns the downloadable upload template.
func SampleCSV() string {
	return `name,email,company,company_size,industry,budget
John Smith,john@techcorp.com,TechCorp,enterprise,technology,75000
Sarah Johnson,sarah@medisure.com,MediSure,medium,healthcare,55000
Michael Chen,michael@smallbiz.com,SmallBiz Inc,small,retail,15000
Emily Davis,emily@finedge.com,FinEdge,large,finance,120000
Robert Taylor,robert@localshop.com,LocalShop,small,retail,8000
`
}
