package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"chatman_legal_go/db"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

func createTestCase(t *testing.T, clientID string) *models.Case {
	c := &models.Case{Title: "Test Matter", ClientID: clientID, PracticeArea: "family"}
	assert.NoError(t, services.CreateCase(db.DB, "CHL", c))
	return c
}

func TestCaseMessagesHandler_MarksRead(t *testing.T) {
	setupTestDB(t)
	client := createTestUser(t, models.RoleClient)
	attorney := createTestUser(t, models.RoleAttorney)
	matter := createTestCase(t, client.ID)

	fromAttorney, err := services.SendMessage(db.DB, matter.ID, attorney.ID, "Update on your case")
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodGet, "/api/portal/cases/"+matter.ID+"/messages", nil)
	c.SetParamNames("id")
	c.SetParamValues(matter.ID)
	asUser(c, client)

	assert.NoError(t, CaseMessagesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.Message
	db.DB.First(&stored, "id = ?", fromAttorney.ID)
	assert.True(t, stored.IsRead)
}

func TestCaseMessagesHandler_OtherClientsCaseHidden(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, models.RoleClient)
	intruder := createTestUser(t, models.RoleClient)
	matter := createTestCase(t, owner.ID)

	_, c, _ := setupEcho(http.MethodGet, "/api/portal/cases/"+matter.ID+"/messages", nil)
	c.SetParamNames("id")
	c.SetParamValues(matter.ID)
	asUser(c, intruder)

	err := CaseMessagesHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestPortalCasesHandler_StatusFilter(t *testing.T) {
	setupTestDB(t)
	client := createTestUser(t, models.RoleClient)
	createTestCase(t, client.ID)
	closedCase := createTestCase(t, client.ID)
	_, err := services.UpdateCaseStatus(db.DB, closedCase.ID, models.CaseStatusClosed)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodGet, "/api/portal/cases?status=closed", nil)
	asUser(c, client)

	assert.NoError(t, PortalCasesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []caseResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, closedCase.ID, resp[0].ID)
	assert.Equal(t, models.CaseStatusClosed, resp[0].Status)
}

func TestSendCaseMessageHandler(t *testing.T) {
	setupTestDB(t)
	client := createTestUser(t, models.RoleClient)
	matter := createTestCase(t, client.ID)

	_, c, rec := setupJSON(http.MethodPost, "/api/portal/cases/"+matter.ID+"/messages",
		`{"body":"When is my hearing?"}`)
	c.SetParamNames("id")
	c.SetParamValues(matter.ID)
	asUser(c, client)

	assert.NoError(t, SendCaseMessageHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var msg models.Message
	assert.NoError(t, db.DB.First(&msg).Error)
	assert.Equal(t, client.ID, msg.SenderID)
	assert.False(t, msg.IsRead)
}

func TestUpdateProfileHandler_RestrictedFields(t *testing.T) {
	setupTestDB(t)
	client := createTestUser(t, models.RoleClient)
	originalEmail := client.Email

	_, c, rec := setupJSON(http.MethodPut, "/api/portal/profile",
		`{"name":"New Name","phone":"555-0199","email":"evil@example.com","role":"admin"}`)
	asUser(c, client)

	assert.NoError(t, UpdateProfileHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	db.DB.First(&stored, "id = ?", client.ID)
	assert.Equal(t, "New Name", stored.Name)
	assert.Equal(t, "555-0199", stored.Phone)
	// Email and role are not editable from the portal
	assert.Equal(t, originalEmail, stored.Email)
	assert.Equal(t, models.RoleClient, stored.Role)
}

func TestShareHandler(t *testing.T) {
	setupTestDB(t)
	client := createTestUser(t, models.RoleClient)
	client.Name = "John Smith"
	db.DB.Save(client)

	db.DB.Create(&models.ReferralVisit{Slug: "john-smith"})
	db.DB.Create(&models.Lead{FirstName: "Friend", ReferralSlug: "john-smith", Status: models.LeadStatusNew, Source: models.LeadSourceReferral})
	db.DB.Create(&models.Lead{FirstName: "Signed", ReferralSlug: "john-smith", Status: models.LeadStatusConverted, Source: models.LeadSourceReferral})

	_, c, rec := setupEcho(http.MethodGet, "/api/portal/share", nil)
	asUser(c, client)

	assert.NoError(t, ShareHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slug      string `json:"slug"`
		ShareURL  string `json:"share_url"`
		Visits    int64  `json:"visits"`
		Leads     int64  `json:"leads"`
		Converted int64  `json:"converted"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "john-smith", resp.Slug)
	assert.Equal(t, "http://localhost:8080/r/john-smith", resp.ShareURL)
	assert.Equal(t, int64(1), resp.Visits)
	assert.Equal(t, int64(2), resp.Leads)
	assert.Equal(t, int64(1), resp.Converted)
}

func TestPortalDashboardHandler(t *testing.T) {
	setupTestDB(t)
	client := createTestUser(t, models.RoleClient)
	matter := createTestCase(t, client.ID)
	_, err := services.UpdateCaseStatus(db.DB, matter.ID, models.CaseStatusWon)
	assert.NoError(t, err)
	createTestCase(t, client.ID)

	_, c, rec := setupEcho(http.MethodGet, "/api/portal/dashboard", nil)
	asUser(c, client)

	assert.NoError(t, PortalDashboardHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var dash services.PortalDashboard
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Len(t, dash.ActiveCases, 1)
	assert.Len(t, dash.ResolvedCases, 1)
}
