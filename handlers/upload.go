package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"chatman_legal_go/db"
	"chatman_legal_go/services"
)

func readUploadedCSV(c echo.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "A CSV file is required")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Please upload a CSV file")
	}

	src, err := file.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	return string(content), nil
}

// ImportPreviewHandler parses an uploaded CSV and returns the rows that
// would be imported, without writing anything.
func ImportPreviewHandler(c echo.Context) error {
	text, err := readUploadedCSV(c)
	if err != nil {
		return err
	}

	leads := services.ParseLeadsCSV(text)
	if len(leads) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No valid contacts found in the CSV file")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(leads),
		"leads": leads,
	})
}

// ImportHandler parses and imports an uploaded CSV in one step
func ImportHandler(c echo.Context) error {
	text, err := readUploadedCSV(c)
	if err != nil {
		return err
	}

	leads := services.ParseLeadsCSV(text)
	if len(leads) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No valid contacts found in the CSV file")
	}

	result := services.ImportLeads(db.DB, leads)
	return c.JSON(http.StatusOK, result)
}

// ImportTemplateHandler serves the CSV template for bulk uploads
func ImportTemplateHandler(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="leads_template.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(services.LeadImportTemplateCSV))
}
