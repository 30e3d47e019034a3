package services

import (
	"chatman_legal_go/models"
)

// StatusBadge is the presentation descriptor for a lifecycle status: the
// tone used by every client that renders it, a human label, and a progress
// percentage for case timelines.
type StatusBadge struct {
	Color    string `json:"color"`
	Label    string `json:"label"`
	Progress int    `json:"progress"`
}

// caseBadges maps each case status to its badge. Closed shares 100% progress
// with won: both mean the matter is finished, they differ only in tone.
var caseBadges = map[string]StatusBadge{
	models.CaseStatusIntake:  {Color: "blue", Label: "Intake", Progress: 10},
	models.CaseStatusActive:  {Color: "green", Label: "Active", Progress: 50},
	models.CaseStatusPending: {Color: "yellow", Label: "Pending Review", Progress: 70},
	models.CaseStatusSettled: {Color: "purple", Label: "Settled", Progress: 90},
	models.CaseStatusWon:     {Color: "emerald", Label: "Won", Progress: 100},
	models.CaseStatusClosed:  {Color: "gray", Label: "Closed", Progress: 100},
}

var leadBadges = map[string]StatusBadge{
	models.LeadStatusNew:       {Color: "blue", Label: "New"},
	models.LeadStatusContacted: {Color: "yellow", Label: "Contacted"},
	models.LeadStatusConverted: {Color: "green", Label: "Converted"},
	models.LeadStatusClosed:    {Color: "gray", Label: "Closed"},
}

// CaseStatusBadge returns the badge for a case status. Unknown statuses
// degrade to a gray badge carrying the raw value and zero progress, so stale
// rows render instead of erroring.
func CaseStatusBadge(status string) StatusBadge {
	if badge, ok := caseBadges[status]; ok {
		return badge
	}
	return StatusBadge{Color: "gray", Label: status, Progress: 0}
}

// LeadStatusBadge returns the badge for a lead status, degrading unknown
// values the same way CaseStatusBadge does.
func LeadStatusBadge(status string) StatusBadge {
	if badge, ok := leadBadges[status]; ok {
		return badge
	}
	return StatusBadge{Color: "gray", Label: status}
}

// CaseProgress returns the timeline percentage for a case status.
func CaseProgress(status string) int {
	return CaseStatusBadge(status).Progress
}

// NextLeadStatuses returns the statuses staff may move a lead to from its
// current one. Any valid status other than the current is allowed; the
// lifecycle has no one-way gates.
func NextLeadStatuses(current string) []string {
	next := make([]string, 0, len(models.LeadStatuses))
	for _, s := range models.LeadStatuses {
		if s != current {
			next = append(next, s)
		}
	}
	return next
}
