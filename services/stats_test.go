package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatman_legal_go/models"
)

func setupStatsTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Case{}, &models.Lead{})
	return db
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestComputeCaseStats(t *testing.T) {
	db := setupStatsTestDB()

	client := models.User{Name: "Client", Email: "c@example.com", Password: "x", Role: models.RoleClient}
	db.Create(&client)

	mk := func(num, status string, settlement *float64) {
		db.Create(&models.Case{
			CaseNumber:       num,
			Title:            "T",
			Status:           status,
			ClientID:         client.ID,
			SettlementAmount: settlement,
		})
	}
	mk("C-1", models.CaseStatusIntake, nil)
	mk("C-2", models.CaseStatusActive, nil)
	mk("C-3", models.CaseStatusWon, float64Ptr(50000))
	mk("C-4", models.CaseStatusSettled, float64Ptr(25000))
	mk("C-5", models.CaseStatusClosed, nil)

	stats, err := ComputeCaseStats(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus[models.CaseStatusIntake])
	assert.Equal(t, int64(1), stats.ByStatus[models.CaseStatusWon])
	assert.Equal(t, int64(0), stats.ByStatus[models.CaseStatusPending])
	assert.Equal(t, int64(3), stats.Resolved)
	// Won + settled over total
	assert.InDelta(t, 40.0, stats.ResolvedRate, 0.001)
	assert.InDelta(t, 75000.0, stats.TotalSettlement, 0.001)
}

func TestComputeCaseStats_Empty(t *testing.T) {
	db := setupStatsTestDB()

	stats, err := ComputeCaseStats(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, 0.0, stats.ResolvedRate)
	assert.Equal(t, 0.0, stats.TotalSettlement)
}

func TestComputeLeadStats(t *testing.T) {
	db := setupStatsTestDB()

	for _, s := range []string{
		models.LeadStatusNew,
		models.LeadStatusNew,
		models.LeadStatusContacted,
		models.LeadStatusConverted,
	} {
		db.Create(&models.Lead{FirstName: "L", Status: s, Source: models.LeadSourceContact})
	}

	stats, err := ComputeLeadStats(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[models.LeadStatusNew])
	assert.Equal(t, int64(0), stats.ByStatus[models.LeadStatusClosed])
	assert.InDelta(t, 25.0, stats.ConversionRate, 0.001)
}
