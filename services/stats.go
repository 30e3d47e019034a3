package services

import (
	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// CaseStats summarizes the firm's caseload for the admin dashboard.
type CaseStats struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"by_status"`
	Resolved        int64            `json:"resolved"`
	ResolvedRate    float64          `json:"resolved_rate"`
	TotalSettlement float64          `json:"total_settlement"`
}

// LeadStats summarizes the lead pipeline for the admin dashboard.
type LeadStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	ConversionRate float64          `json:"conversion_rate"`
}

// ComputeCaseStats aggregates case counts by status in a single grouped
// query. Statuses outside the known lifecycle still count toward the total
// but land in the by-status map under their raw value.
func ComputeCaseStats(db *gorm.DB) (*CaseStats, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := db.Model(&models.Case{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &CaseStats{ByStatus: make(map[string]int64, len(models.CaseStatuses))}
	for _, s := range models.CaseStatuses {
		stats.ByStatus[s] = 0
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
		stats.Total += r.Count
	}

	stats.Resolved = stats.ByStatus[models.CaseStatusWon] +
		stats.ByStatus[models.CaseStatusSettled] +
		stats.ByStatus[models.CaseStatusClosed]
	if stats.Total > 0 {
		wonOrSettled := stats.ByStatus[models.CaseStatusWon] + stats.ByStatus[models.CaseStatusSettled]
		stats.ResolvedRate = float64(wonOrSettled) / float64(stats.Total) * 100
	}

	var settlement *float64
	if err := db.Model(&models.Case{}).
		Select("sum(settlement_amount)").
		Where("settlement_amount IS NOT NULL").
		Scan(&settlement).Error; err != nil {
		return nil, err
	}
	if settlement != nil {
		stats.TotalSettlement = *settlement
	}

	return stats, nil
}

// ComputeLeadStats aggregates lead counts by status.
func ComputeLeadStats(db *gorm.DB) (*LeadStats, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := db.Model(&models.Lead{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &LeadStats{ByStatus: make(map[string]int64, len(models.LeadStatuses))}
	for _, s := range models.LeadStatuses {
		stats.ByStatus[s] = 0
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
		stats.Total += r.Count
	}

	if stats.Total > 0 {
		stats.ConversionRate = float64(stats.ByStatus[models.LeadStatusConverted]) / float64(stats.Total) * 100
	}

	return stats, nil
}
