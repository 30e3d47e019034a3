package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"chatman_legal_go/db"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

// leadResponse decorates a lead with its badge and the statuses staff may
// move it to next.
type leadResponse struct {
	models.Lead
	Badge        services.StatusBadge `json:"badge"`
	NextStatuses []string             `json:"next_statuses"`
}

func toLeadResponse(l models.Lead) leadResponse {
	return leadResponse{
		Lead:         l,
		Badge:        services.LeadStatusBadge(l.Status),
		NextStatuses: services.NextLeadStatuses(l.Status),
	}
}

// ListLeadsHandler returns leads, optionally filtered by query params
func ListLeadsHandler(c echo.Context) error {
	leads, err := services.ListLeads(db.DB, services.LeadFilter{
		Status: c.QueryParam("status"),
		Source: c.QueryParam("source"),
		Search: c.QueryParam("q"),
	})
	if err != nil {
		c.Logger().Errorf("failed to list leads: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list leads")
	}

	out := make([]leadResponse, len(leads))
	for i, l := range leads {
		out[i] = toLeadResponse(l)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateLeadStatusHandler advances a lead through its pipeline
func UpdateLeadStatusHandler(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	lead, err := services.UpdateLeadStatus(db.DB, c.Param("id"), req.Status)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Lead not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toLeadResponse(*lead))
}

// LeadStatsHandler returns pipeline counts for the leads page header
func LeadStatsHandler(c echo.Context) error {
	stats, err := services.ComputeLeadStats(db.DB)
	if err != nil {
		c.Logger().Errorf("failed to compute lead stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// ExportLeadsHandler streams the lead pipeline as an Excel workbook
func ExportLeadsHandler(c echo.Context) error {
	buf, err := services.GenerateLeadsExcel(db.DB)
	if err != nil {
		c.Logger().Errorf("failed to generate leads export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate export")
	}

	filename := fmt.Sprintf("leads_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
