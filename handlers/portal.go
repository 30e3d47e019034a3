package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"chatman_legal_go/config"
	"chatman_legal_go/db"
	"chatman_legal_go/middleware"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

// PortalDashboardHandler returns the client's landing page payload
func PortalDashboardHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	dash, err := services.BuildPortalDashboard(db.DB, user)
	if err != nil {
		c.Logger().Errorf("failed to build portal dashboard: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard")
	}
	return c.JSON(http.StatusOK, dash)
}

// PortalCasesHandler lists the client's own cases with badges, optionally
// filtered by status
func PortalCasesHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	cases, err := services.ListCases(db.DB, services.CaseFilter{
		ClientID: user.ID,
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		c.Logger().Errorf("failed to list portal cases: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list cases")
	}
	return c.JSON(http.StatusOK, toCaseResponses(cases))
}

// ownedCase loads a case and verifies the viewer may see it: the client who
// owns it, or any staff member.
func ownedCase(c echo.Context, caseID string) (*models.Case, error) {
	user := middleware.GetCurrentUser(c)

	found, err := services.GetCase(db.DB, caseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Case not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load case")
	}
	if found.ClientID != user.ID && !user.IsStaff() {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}
	return found, nil
}

// CaseMessagesHandler returns a case thread. Viewing it marks every message
// the viewer didn't send as read.
func CaseMessagesHandler(c echo.Context) error {
	found, err := ownedCase(c, c.Param("id"))
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	messages, err := services.CaseMessages(db.DB, found.ID, user.ID)
	if err != nil {
		c.Logger().Errorf("failed to load messages: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load messages")
	}
	return c.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// SendCaseMessageHandler appends a message to a case thread
func SendCaseMessageHandler(c echo.Context) error {
	found, err := ownedCase(c, c.Param("id"))
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user := middleware.GetCurrentUser(c)
	msg, err := services.SendMessage(db.DB, found.ID, user.ID, req.Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Message body is required")
	}
	return c.JSON(http.StatusCreated, msg)
}

// ProfileHandler returns the authenticated user's profile
func ProfileHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.GetCurrentUser(c))
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfileHandler lets a user edit their own name and phone. Email,
// role, and active flag are not editable from the portal.
func UpdateProfileHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if name := services.SanitizeText(req.Name); name != "" {
		updates["name"] = name
	}
	if strings.TrimSpace(req.Phone) != "" {
		updates["phone"] = services.SanitizeText(req.Phone)
	}
	if len(updates) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Nothing to update")
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		c.Logger().Errorf("failed to update profile: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UploadAvatarHandler stores a profile photo and saves its URL on the user
func UploadAvatarHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "An image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Avatar must be an image")
	}
	const maxAvatarSize = 5 << 20
	if file.Size > maxAvatarSize {
		return echo.NewHTTPError(http.StatusBadRequest, "Avatar must be smaller than 5MB")
	}

	key := services.GenerateAvatarKey(user.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		c.Logger().Errorf("failed to upload avatar: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload avatar")
	}

	if err := db.DB.Model(user).Update("avatar_url", result.URL).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save avatar")
	}
	user.AvatarURL = result.URL

	return c.JSON(http.StatusOK, map[string]string{"avatar_url": result.URL})
}

// ShareHandler returns the client's referral link and its counters
func ShareHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	cfg := c.Get("config").(*config.Config)

	slug := services.EncodeReferralSlug(user.Name)

	visits, err := services.CountReferralVisits(db.DB, slug)
	if err != nil {
		c.Logger().Errorf("failed to count referral visits: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load referral stats")
	}
	leads, err := services.CountReferralLeads(db.DB, slug)
	if err != nil {
		c.Logger().Errorf("failed to count referral leads: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load referral stats")
	}
	converted, err := services.CountReferralConversions(db.DB, slug)
	if err != nil {
		c.Logger().Errorf("failed to count referral conversions: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load referral stats")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"slug":      slug,
		"share_url": fmt.Sprintf("%s/r/%s", strings.TrimSuffix(cfg.AppURL, "/"), slug),
		"visits":    visits,
		"leads":     leads,
		"converted": converted,
	})
}
