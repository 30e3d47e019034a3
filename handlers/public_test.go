package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"chatman_legal_go/db"
	"chatman_legal_go/models"
)

func TestContactHandler(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupJSON(http.MethodPost, "/api/contact",
		`{"first_name":"John","last_name":"Doe","email":"john@example.com","practice_area":"family","message":"Need help","status":"converted"}`)

	assert.NoError(t, ContactHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var lead models.Lead
	assert.NoError(t, db.DB.First(&lead).Error)
	assert.Equal(t, "John", lead.FirstName)
	// Status is forced to new regardless of the request body
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, models.LeadSourceContact, lead.Source)
}

func TestContactHandler_MissingFields(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupJSON(http.MethodPost, "/api/contact", `{"message":"anonymous"}`)

	err := ContactHandler(c)
	assert.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestBookingHandler_FormatsMessage(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupJSON(http.MethodPost, "/api/book",
		`{"first_name":"Jane","email":"jane@example.com","preferred_date":"2026-09-15","preferred_time":"10:30 AM","message":"Contract review"}`)

	assert.NoError(t, BookingHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var lead models.Lead
	assert.NoError(t, db.DB.First(&lead).Error)
	assert.Equal(t, models.LeadSourceBooking, lead.Source)
	assert.Contains(t, lead.Message, "Preferred Date: 2026-09-15")
	assert.Contains(t, lead.Message, "Preferred Time: 10:30 AM")
	assert.Contains(t, lead.Message, "Contract review")
}

func TestBookingHandler_RequiresSchedule(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupJSON(http.MethodPost, "/api/book",
		`{"first_name":"Jane","email":"jane@example.com"}`)

	err := BookingHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestPopupHandler_FixedFields(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupJSON(http.MethodPost, "/api/popup",
		`{"first_name":"Quick","phone":"555-0100","practice_area":"criminal","message":"ignored"}`)

	assert.NoError(t, PopupHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var lead models.Lead
	assert.NoError(t, db.DB.First(&lead).Error)
	assert.Equal(t, "general", lead.PracticeArea)
	assert.Equal(t, "Lead captured from popup", lead.Message)
	assert.Equal(t, models.LeadSourcePopup, lead.Source)
}

func TestReferralPageHandler(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/r/john-smith", nil)
	c.SetParamNames("slug")
	c.SetParamValues("john-smith")

	assert.NoError(t, ReferralPageHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "John Smith", resp["referrer_name"])

	// The visit is recorded in the background
	var count int64
	for i := 0; i < 50; i++ {
		db.DB.Model(&models.ReferralVisit{}).Count(&count)
		if count > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, int64(1), count)
}

func TestReferralLeadHandler(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupJSON(http.MethodPost, "/r/john-smith",
		`{"first_name":"Friend","email":"friend@example.com","preferred_date":"2026-09-20","preferred_time":"2:00 PM","message":"John sent me"}`)
	c.SetParamNames("slug")
	c.SetParamValues("john-smith")

	assert.NoError(t, ReferralLeadHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var lead models.Lead
	assert.NoError(t, db.DB.First(&lead).Error)
	assert.Equal(t, models.LeadSourceReferral, lead.Source)
	assert.Equal(t, "john-smith", lead.ReferralSlug)
	assert.Contains(t, lead.Message, "REFERRAL from: John Smith (john-smith)")
	assert.Contains(t, lead.Message, "Preferred Date: 2026-09-20")
	assert.Contains(t, lead.Message, "John sent me")
}
