package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"chatman_legal_go/db"
	"chatman_legal_go/models"
)

func createTestLead(t *testing.T, status string) *models.Lead {
	lead := &models.Lead{
		FirstName: "Test",
		Email:     "lead@example.com",
		Status:    status,
		Source:    models.LeadSourceManual,
	}
	assert.NoError(t, db.DB.Create(lead).Error)
	return lead
}

func TestListLeadsHandler_BadgeAndNextStatuses(t *testing.T) {
	setupTestDB(t)
	createTestLead(t, models.LeadStatusNew)

	_, c, rec := setupEcho(http.MethodGet, "/api/leads", nil)

	assert.NoError(t, ListLeadsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []leadResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "blue", resp[0].Badge.Color)
	assert.Equal(t, "New", resp[0].Badge.Label)
	assert.ElementsMatch(t,
		[]string{models.LeadStatusContacted, models.LeadStatusConverted, models.LeadStatusClosed},
		resp[0].NextStatuses)
}

func TestUpdateLeadStatusHandler(t *testing.T) {
	setupTestDB(t)
	lead := createTestLead(t, models.LeadStatusNew)

	_, c, rec := setupJSON(http.MethodPut, "/api/leads/"+lead.ID+"/status", `{"status":"contacted"}`)
	c.SetParamNames("id")
	c.SetParamValues(lead.ID)

	assert.NoError(t, UpdateLeadStatusHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp leadResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.LeadStatusContacted, resp.Status)
	assert.Equal(t, "yellow", resp.Badge.Color)
}

func TestUpdateLeadStatusHandler_InvalidStatus(t *testing.T) {
	setupTestDB(t)
	lead := createTestLead(t, models.LeadStatusNew)

	_, c, _ := setupJSON(http.MethodPut, "/api/leads/"+lead.ID+"/status", `{"status":"bogus"}`)
	c.SetParamNames("id")
	c.SetParamValues(lead.ID)

	err := UpdateLeadStatusHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUpdateLeadStatusHandler_NotFound(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupJSON(http.MethodPut, "/api/leads/missing/status", `{"status":"contacted"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := UpdateLeadStatusHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestExportLeadsHandler(t *testing.T) {
	setupTestDB(t)
	createTestLead(t, models.LeadStatusNew)

	_, c, rec := setupEcho(http.MethodGet, "/api/admin/leads/export", nil)

	assert.NoError(t, ExportLeadsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")
	assert.NotZero(t, rec.Body.Len())
}
