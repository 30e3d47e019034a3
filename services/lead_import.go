package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// ImportResult contains the summary of a bulk lead import
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	SuccessCount   int      `json:"success_count"`
	FailedCount    int      `json:"failed_count"`
	Errors         []string `json:"errors"`
}

// maxImportErrors caps how many row errors an import result carries back to
// the caller; the rest are counted but not itemized.
const maxImportErrors = 5

// LeadImportTemplateCSV is the downloadable starting point for bulk uploads.
// Any header spelling the fuzzy matcher recognizes works; this is just the
// canonical one.
const LeadImportTemplateCSV = "first_name,last_name,email,phone,practice_area,notes\n" +
	"John,Doe,john@example.com,555-0100,personal injury,Met at community event\n"

// ParseLeadsCSV extracts lead candidates from raw CSV text.
//
// The parser is deliberately naive: rows split on newlines, fields on commas,
// quotes stripped rather than honored. A quoted field containing a comma will
// shift the columns after it. This matches the behavior the import flow has
// always had, and the template it ships keeps fields comma-free.
//
// Header matching is fuzzy so exports from other CRMs load without editing:
// any header containing both "first" and "name" maps to the first name, a
// bare "name"/"full_name"/"fullname" splits on the first space, and so on. A
// row is kept only when it has an email, or a first name plus a phone.
func ParseLeadsCSV(text string) []models.Lead {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(strings.ToLower(lines[0]), ",")
	for i, h := range headers {
		headers[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}

	var leads []models.Lead
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		for i, v := range values {
			values[i] = strings.ReplaceAll(strings.TrimSpace(v), `"`, "")
		}

		lead := models.Lead{
			Status: models.LeadStatusNew,
			Source: models.LeadSourceImport,
		}
		for i, header := range headers {
			value := ""
			if i < len(values) {
				value = values[i]
			}
			switch {
			case strings.Contains(header, "first") && strings.Contains(header, "name"):
				lead.FirstName = value
			case strings.Contains(header, "last") && strings.Contains(header, "name"):
				lead.LastName = value
			case header == "name" || header == "full_name" || header == "fullname":
				parts := strings.SplitN(value, " ", 2)
				lead.FirstName = parts[0]
				if len(parts) > 1 {
					lead.LastName = parts[1]
				}
			case strings.Contains(header, "email"):
				lead.Email = value
			case strings.Contains(header, "phone") || strings.Contains(header, "tel"):
				lead.Phone = value
			case strings.Contains(header, "area") || strings.Contains(header, "practice") || strings.Contains(header, "type"):
				lead.PracticeArea = value
			case strings.Contains(header, "note") || strings.Contains(header, "message") || strings.Contains(header, "comment"):
				lead.Message = value
			}
		}

		if lead.Email != "" || (lead.FirstName != "" && lead.Phone != "") {
			leads = append(leads, lead)
		}
	}

	return leads
}

// ImportLeads inserts parsed leads one at a time. There is no transaction:
// a failure partway through keeps everything inserted before it, and the
// result reports per-row counts with at most maxImportErrors itemized.
func ImportLeads(db *gorm.DB, leads []models.Lead) *ImportResult {
	result := &ImportResult{Errors: []string{}}

	for i := range leads {
		lead := leads[i]
		result.TotalProcessed++

		lead.Status = models.LeadStatusNew
		lead.Source = models.LeadSourceImport
		if lead.PracticeArea == "" {
			lead.PracticeArea = "other"
		}

		if err := db.Create(&lead).Error; err != nil {
			result.FailedCount++
			who := lead.Email
			if who == "" {
				who = lead.FirstName
			}
			if len(result.Errors) < maxImportErrors {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", who, err))
			}
			continue
		}
		result.SuccessCount++
	}

	return result
}
