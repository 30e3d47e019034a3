package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"chatman_legal_go/config"
	"chatman_legal_go/db"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

// leadRequest is the shared body shape for the public intake forms. Unused
// fields are simply left empty by each form.
type leadRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PracticeArea  string `json:"practice_area"`
	Message       string `json:"message"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
}

// leadUnavailable is the degraded answer when the lead store is down: the
// visitor gets a phone number instead of a dead form.
func leadUnavailable(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	return c.JSON(http.StatusServiceUnavailable, map[string]string{
		"error":    "We could not save your request right now.",
		"fallback": fmt.Sprintf("Please call us at %s and we will take your details directly.", cfg.FirmPhone),
	})
}

func createPublicLead(c echo.Context, lead *models.Lead) error {
	cfg := c.Get("config").(*config.Config)
	if err := services.CreateLead(db.DB, cfg, lead); err != nil {
		c.Logger().Errorf("failed to save %s lead: %v", lead.Source, err)
		return leadUnavailable(c)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Thank you. We will be in touch shortly.",
		"lead_id": lead.ID,
	})
}

// ContactHandler captures a lead from the contact form
func ContactHandler(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.FirstName) == "" || (strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and an email or phone number are required")
	}

	return createPublicLead(c, &models.Lead{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PracticeArea: req.PracticeArea,
		Message:      req.Message,
		Source:       models.LeadSourceContact,
	})
}

// BookingHandler captures a consultation request. The preferred date and
// time fold into the message text rather than structured columns.
func BookingHandler(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.FirstName) == "" || (strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and an email or phone number are required")
	}
	if strings.TrimSpace(req.PreferredDate) == "" || strings.TrimSpace(req.PreferredTime) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Preferred date and time are required")
	}

	return createPublicLead(c, &models.Lead{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PracticeArea: req.PracticeArea,
		Message:      services.BookingMessage(req.PreferredDate, req.PreferredTime, req.Message),
		Source:       models.LeadSourceBooking,
	})
}

// PopupHandler captures a lead from the exit-intent popup. The popup only
// asks for a name and contact detail, so practice area and message are fixed.
func PopupHandler(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.FirstName) == "" || (strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and an email or phone number are required")
	}

	return createPublicLead(c, &models.Lead{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PracticeArea: "general",
		Message:      "Lead captured from popup",
		Source:       models.LeadSourcePopup,
	})
}

// ReferralPageHandler backs the referral landing page: it decodes the slug
// into the referrer's name and records the visit in the background.
func ReferralPageHandler(c echo.Context) error {
	slug := c.Param("slug")
	name := services.DecodeReferralSlug(slug)

	services.RecordReferralVisit(db.DB, slug, c.RealIP(), c.Request().UserAgent())

	cfg := c.Get("config").(*config.Config)
	return c.JSON(http.StatusOK, map[string]string{
		"slug":          slug,
		"referrer_name": name,
		"firm_name":     cfg.FirmName,
	})
}

// ReferralLeadHandler captures a lead arriving through a client's share
// link. The attribution is carried twice: a structured referral_slug column
// and a REFERRAL prefix on the message, so it survives plain-text exports.
func ReferralLeadHandler(c echo.Context) error {
	slug := c.Param("slug")

	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.FirstName) == "" || (strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and an email or phone number are required")
	}

	referrerName := services.DecodeReferralSlug(slug)
	message := fmt.Sprintf("REFERRAL from: %s (%s)\nPreferred Date: %s\nPreferred Time: %s\n\n%s",
		referrerName, slug, req.PreferredDate, req.PreferredTime, req.Message)

	return createPublicLead(c, &models.Lead{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PracticeArea: req.PracticeArea,
		Message:      message,
		Source:       models.LeadSourceReferral,
		ReferralSlug: slug,
	})
}
