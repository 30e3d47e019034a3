package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"chatman_legal_go/db"
	"chatman_legal_go/models"
)

// ListClientsHandler returns all client accounts for staff. Password hashes
// never serialize; the model keeps them out of JSON.
func ListClientsHandler(c echo.Context) error {
	query := db.DB.Where("role = ?", models.RoleClient).Order("created_at DESC")
	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var clients []models.User
	if err := query.Find(&clients).Error; err != nil {
		c.Logger().Errorf("failed to list clients: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list clients")
	}
	return c.JSON(http.StatusOK, clients)
}

// ListAttorneysHandler returns attorney accounts, used when assigning cases
func ListAttorneysHandler(c echo.Context) error {
	var attorneys []models.User
	if err := db.DB.Where("role = ? AND is_active = ?", models.RoleAttorney, true).
		Order("name ASC").
		Find(&attorneys).Error; err != nil {
		c.Logger().Errorf("failed to list attorneys: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list attorneys")
	}
	return c.JSON(http.StatusOK, attorneys)
}
