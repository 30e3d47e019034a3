package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatman_legal_go/config"
	"chatman_legal_go/db"
	"chatman_legal_go/middleware"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Case{},
		&models.Lead{},
		&models.Message{},
		&models.Appointment{},
		&models.ReferralVisit{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		EmailTestMode:    true,
		FirmName:         "Chatman Legal",
		FirmPhone:        "1-800-CHATMAN",
		CaseNumberPrefix: "CHL",
		AppURL:           "http://localhost:8080",
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", testConfig())

	return e, c, rec
}

// setupJSON is setupEcho for JSON bodies
func setupJSON(method, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", testConfig())

	return e, c, rec
}

func createTestUser(t *testing.T, role string) *models.User {
	hashed, err := services.HashPassword("password123")
	assert.NoError(t, err)

	user := &models.User{
		Name:     "Test " + role,
		Email:    role + "-" + uuid.New().String() + "@example.com",
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, db.DB.Create(user).Error)
	return user
}

func asUser(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
}
