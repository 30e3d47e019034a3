package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// GenerateLeadsExcel builds an Excel workbook of the lead pipeline for staff
// to work offline: a summary sheet with per-status counts and a sheet with
// one row per lead.
func GenerateLeadsExcel(db *gorm.DB) (*bytes.Buffer, error) {
	leads, err := ListLeads(db, LeadFilter{})
	if err != nil {
		return nil, err
	}
	stats, err := ComputeLeadStats(db)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// --- Summary Sheet ---
	const sheetSummary = "Summary"
	f.SetSheetName("Sheet1", sheetSummary)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	f.SetCellValue(sheetSummary, "A1", "Lead Pipeline Summary")
	f.SetCellStyle(sheetSummary, "A1", "A1", titleStyle)

	f.SetCellValue(sheetSummary, "A3", "Status")
	f.SetCellValue(sheetSummary, "B3", "Count")
	f.SetCellStyle(sheetSummary, "A3", "B3", headerStyle)

	row := 4
	for _, status := range models.LeadStatuses {
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), LeadStatusBadge(status).Label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), stats.ByStatus[status])
		row++
	}
	f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), stats.Total)
	row += 2
	f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), "Conversion rate")
	f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), fmt.Sprintf("%.1f%%", stats.ConversionRate))
	f.SetColWidth(sheetSummary, "A", "B", 20)

	// --- Leads Sheet ---
	const sheetLeads = "Leads"
	f.NewSheet(sheetLeads)

	headers := []string{"First Name", "Last Name", "Email", "Phone", "Practice Area", "Status", "Source", "Referral", "Message", "Created"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetLeads, cell, header)
	}
	f.SetCellStyle(sheetLeads, "A1", "J1", headerStyle)
	f.SetColWidth(sheetLeads, "A", "J", 20)
	f.SetColWidth(sheetLeads, "I", "I", 50)

	for i, lead := range leads {
		r := i + 2
		f.SetCellValue(sheetLeads, fmt.Sprintf("A%d", r), lead.FirstName)
		f.SetCellValue(sheetLeads, fmt.Sprintf("B%d", r), lead.LastName)
		f.SetCellValue(sheetLeads, fmt.Sprintf("C%d", r), lead.Email)
		f.SetCellValue(sheetLeads, fmt.Sprintf("D%d", r), lead.Phone)
		f.SetCellValue(sheetLeads, fmt.Sprintf("E%d", r), lead.PracticeArea)
		f.SetCellValue(sheetLeads, fmt.Sprintf("F%d", r), LeadStatusBadge(lead.Status).Label)
		f.SetCellValue(sheetLeads, fmt.Sprintf("G%d", r), lead.Source)
		f.SetCellValue(sheetLeads, fmt.Sprintf("H%d", r), lead.ReferralSlug)
		f.SetCellValue(sheetLeads, fmt.Sprintf("I%d", r), lead.Message)
		f.SetCellValue(sheetLeads, fmt.Sprintf("J%d", r), lead.CreatedAt.Format("2006-01-02 15:04"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}
