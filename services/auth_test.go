package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatman_legal_go/models"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Session{})
	return db
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestRegisterClient_AlwaysClientRole(t *testing.T) {
	db := setupAuthTestDB()

	user, err := RegisterClient(db, nil, "Jane Doe", "jane@example.com", "password123", "555-0100")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterClient_DuplicateEmail(t *testing.T) {
	db := setupAuthTestDB()

	_, err := RegisterClient(db, nil, "Jane", "dup@example.com", "password123", "")
	assert.NoError(t, err)

	_, err = RegisterClient(db, nil, "Other Jane", "dup@example.com", "password123", "")
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	db := setupAuthTestDB()

	user, err := RegisterClient(db, nil, "Jane", "jane@example.com", "password123", "")
	assert.NoError(t, err)
	assert.Nil(t, user.LastLoginAt)

	authed, err := Authenticate(db, "jane@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.NotNil(t, authed.LastLoginAt)

	_, err = Authenticate(db, "jane@example.com", "nope")
	assert.Error(t, err)

	_, err = Authenticate(db, "ghost@example.com", "password123")
	assert.Error(t, err)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	db := setupAuthTestDB()

	user, _ := RegisterClient(db, nil, "Jane", "jane@example.com", "password123", "")
	db.Model(user).Update("is_active", false)

	_, err := Authenticate(db, "jane@example.com", "password123")
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterClient(db, nil, "Jane", "jane@example.com", "password123", "")

	session, err := CreateSession(db, user.ID, "203.0.113.7", "test-agent")
	assert.NoError(t, err)
	assert.Len(t, session.Token, SessionTokenLength*2)

	validated, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.UserID)
	assert.Equal(t, user.Email, validated.User.Email)

	assert.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestValidateSession_Expired(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterClient(db, nil, "Jane", "jane@example.com", "password123", "")

	session, _ := CreateSession(db, user.ID, "", "")
	db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Hour))

	_, err := ValidateSession(db, session.Token)
	assert.Error(t, err)

	// Expired sessions are deleted on validation
	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterClient(db, nil, "Jane", "jane@example.com", "password123", "")

	fresh, _ := CreateSession(db, user.ID, "", "")
	stale, _ := CreateSession(db, user.ID, "", "")
	db.Model(&models.Session{}).Where("id = ?", stale.ID).
		Update("expires_at", time.Now().Add(-time.Hour))

	assert.NoError(t, CleanupExpiredSessions(db))

	var remaining []models.Session
	db.Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)
}
