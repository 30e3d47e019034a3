package services

import (
	"fmt"

	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// AdminDashboard is the aggregate payload behind the staff landing page.
// Everything on it comes from one handler call so the page loads with a
// single round trip.
type AdminDashboard struct {
	CaseStats   *CaseStats           `json:"case_stats"`
	LeadStats   *LeadStats           `json:"lead_stats"`
	ClientCount int64                `json:"client_count"`
	RecentCases []models.Case        `json:"recent_cases"`
	RecentLeads []models.Lead        `json:"recent_leads"`
	ActiveBoard []models.Case        `json:"active_board"`
	Upcoming    []models.Appointment `json:"upcoming_appointments"`
}

const dashboardRecentLimit = 5

// BuildAdminDashboard assembles the staff dashboard.
func BuildAdminDashboard(db *gorm.DB) (*AdminDashboard, error) {
	dash := &AdminDashboard{}

	var err error
	if dash.CaseStats, err = ComputeCaseStats(db); err != nil {
		return nil, err
	}
	if dash.LeadStats, err = ComputeLeadStats(db); err != nil {
		return nil, err
	}

	if err = db.Model(&models.User{}).
		Where("role = ?", models.RoleClient).
		Count(&dash.ClientCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	if err = db.Preload("Client").
		Order("created_at DESC").
		Limit(dashboardRecentLimit).
		Find(&dash.RecentCases).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent cases: %w", err)
	}

	if err = db.Order("created_at DESC").
		Limit(dashboardRecentLimit).
		Find(&dash.RecentLeads).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent leads: %w", err)
	}

	// In-flight matters for the status board, intake through pending review
	if err = db.Preload("Client").
		Where("status IN ?", []string{models.CaseStatusIntake, models.CaseStatusActive, models.CaseStatusPending}).
		Order("updated_at DESC").
		Find(&dash.ActiveBoard).Error; err != nil {
		return nil, fmt.Errorf("failed to load active cases: %w", err)
	}

	dash.Upcoming, err = ListAppointments(db, AppointmentFilter{Status: models.AppointmentStatusScheduled})
	if err != nil {
		return nil, err
	}

	return dash, nil
}

// PortalDashboard is the aggregate payload behind a client's landing page.
type PortalDashboard struct {
	ActiveCases   []models.Case        `json:"active_cases"`
	ResolvedCases []models.Case        `json:"resolved_cases"`
	Upcoming      []models.Appointment `json:"upcoming_appointments"`
	UnreadCount   int64                `json:"unread_count"`
	ReferralSlug  string               `json:"referral_slug"`
}

// BuildPortalDashboard assembles one client's dashboard.
func BuildPortalDashboard(db *gorm.DB, client *models.User) (*PortalDashboard, error) {
	dash := &PortalDashboard{
		ReferralSlug: EncodeReferralSlug(client.Name),
	}

	var err error
	if dash.ActiveCases, dash.ResolvedCases, err = ClientCases(db, client.ID); err != nil {
		return nil, err
	}

	if dash.Upcoming, err = UpcomingAppointments(db, client.ID, dashboardRecentLimit); err != nil {
		return nil, err
	}

	caseIDs := make([]string, 0, len(dash.ActiveCases)+len(dash.ResolvedCases))
	for _, c := range dash.ActiveCases {
		caseIDs = append(caseIDs, c.ID)
	}
	for _, c := range dash.ResolvedCases {
		caseIDs = append(caseIDs, c.ID)
	}
	if dash.UnreadCount, err = UnreadCount(db, caseIDs, client.ID); err != nil {
		return nil, err
	}

	return dash, nil
}
