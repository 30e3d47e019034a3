package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"chatman_legal_go/db"
	"chatman_legal_go/services"
)

// AdminDashboardHandler returns the aggregate staff dashboard payload
func AdminDashboardHandler(c echo.Context) error {
	dash, err := services.BuildAdminDashboard(db.DB)
	if err != nil {
		c.Logger().Errorf("failed to build admin dashboard: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard")
	}
	return c.JSON(http.StatusOK, dash)
}
