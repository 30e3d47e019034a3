package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"chatman_legal_go/config"
	"chatman_legal_go/db"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

// ListAppointmentsHandler returns appointments, optionally filtered
func ListAppointmentsHandler(c echo.Context) error {
	filter := services.AppointmentFilter{
		ClientID:   c.QueryParam("client_id"),
		AttorneyID: c.QueryParam("attorney_id"),
		Status:     c.QueryParam("status"),
	}
	if from := c.QueryParam("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = &t
		}
	}

	appts, err := services.ListAppointments(db.DB, filter)
	if err != nil {
		c.Logger().Errorf("failed to list appointments: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list appointments")
	}
	return c.JSON(http.StatusOK, appts)
}

type createAppointmentRequest struct {
	CaseID          *string `json:"case_id"`
	ClientID        string  `json:"client_id"`
	AttorneyID      string  `json:"attorney_id"`
	Title           string  `json:"title"`
	ScheduledAt     string  `json:"scheduled_at"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        string  `json:"location"`
}

// CreateAppointmentHandler books a meeting between a client and an attorney
func CreateAppointmentHandler(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.ClientID == "" || req.AttorneyID == "" || req.ScheduledAt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Client, attorney and scheduled time are required")
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid scheduled_at, expected RFC3339")
	}

	appt := models.Appointment{
		CaseID:          req.CaseID,
		ClientID:        req.ClientID,
		AttorneyID:      req.AttorneyID,
		Title:           req.Title,
		ScheduledAt:     scheduledAt,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
	}

	cfg := c.Get("config").(*config.Config)
	if err := services.ScheduleAppointment(db.DB, cfg, &appt); err != nil {
		c.Logger().Errorf("failed to schedule appointment: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to schedule appointment")
	}

	return c.JSON(http.StatusCreated, appt)
}

// UpdateAppointmentStatusHandler completes or cancels an appointment
func UpdateAppointmentStatusHandler(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	appt, err := services.UpdateAppointmentStatus(db.DB, c.Param("id"), req.Status)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, appt)
}
