package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatman_legal_go/models"
)

func setupLeadTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Lead{})
	return db
}

func TestCreateLead_ForcesNewStatus(t *testing.T) {
	db := setupLeadTestDB()

	lead := &models.Lead{
		FirstName: "Walk",
		LastName:  "In",
		Email:     "walkin@example.com",
		Status:    models.LeadStatusConverted, // entry points cannot pick their status
		Source:    models.LeadSourceContact,
	}
	assert.NoError(t, CreateLead(db, nil, lead))
	assert.Equal(t, models.LeadStatusNew, lead.Status)

	var stored models.Lead
	db.First(&stored, "id = ?", lead.ID)
	assert.Equal(t, models.LeadStatusNew, stored.Status)
}

func TestCreateLead_SanitizesInput(t *testing.T) {
	db := setupLeadTestDB()

	lead := &models.Lead{
		FirstName: "<b>Bold</b>",
		Message:   `Hi <script>document.cookie</script> there`,
		Source:    models.LeadSourcePopup,
	}
	assert.NoError(t, CreateLead(db, nil, lead))
	assert.Equal(t, "Bold", lead.FirstName)
	assert.NotContains(t, lead.Message, "<script>")
	assert.Contains(t, lead.Message, "there")
}

func TestCreateLead_DefaultsSource(t *testing.T) {
	db := setupLeadTestDB()

	lead := &models.Lead{FirstName: "Manual", Email: "m@example.com"}
	assert.NoError(t, CreateLead(db, nil, lead))
	assert.Equal(t, models.LeadSourceManual, lead.Source)
}

func TestBookingMessage(t *testing.T) {
	msg := BookingMessage("2026-09-15", "10:30 AM", "Need help with a contract")
	assert.Equal(t, "Preferred Date: 2026-09-15\nPreferred Time: 10:30 AM\n\nNeed help with a contract", msg)
}

func TestListLeads_Filters(t *testing.T) {
	db := setupLeadTestDB()

	CreateLead(db, nil, &models.Lead{FirstName: "Alice", Email: "alice@example.com", Source: models.LeadSourceContact})
	CreateLead(db, nil, &models.Lead{FirstName: "Bob", Email: "bob@example.com", Source: models.LeadSourcePopup})

	all, err := ListLeads(db, LeadFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	popup, err := ListLeads(db, LeadFilter{Source: models.LeadSourcePopup})
	assert.NoError(t, err)
	assert.Len(t, popup, 1)
	assert.Equal(t, "Bob", popup[0].FirstName)

	found, err := ListLeads(db, LeadFilter{Search: "alice"})
	assert.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestUpdateLeadStatus(t *testing.T) {
	db := setupLeadTestDB()

	lead := &models.Lead{FirstName: "Alice", Email: "alice@example.com", Source: models.LeadSourceContact}
	assert.NoError(t, CreateLead(db, nil, lead))

	updated, err := UpdateLeadStatus(db, lead.ID, models.LeadStatusContacted)
	assert.NoError(t, err)
	assert.Equal(t, models.LeadStatusContacted, updated.Status)

	// Staff writes of unknown statuses are rejected outright
	_, err = UpdateLeadStatus(db, lead.ID, "spam")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid lead status")

	var stored models.Lead
	db.First(&stored, "id = ?", lead.ID)
	assert.Equal(t, models.LeadStatusContacted, stored.Status)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "plain", SanitizeText("  plain  "))
	assert.Equal(t, "hello", SanitizeText("<i>hello</i>"))
	assert.Equal(t, "", SanitizeText("<img src=x onerror=alert(1)>"))
}
