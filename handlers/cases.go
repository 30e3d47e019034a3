package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"chatman_legal_go/config"
	"chatman_legal_go/db"
	"chatman_legal_go/models"
	"chatman_legal_go/services"
)

// caseResponse decorates a case with its badge so clients render status
// without holding their own copy of the lifecycle tables.
type caseResponse struct {
	models.Case
	Badge services.StatusBadge `json:"badge"`
}

func toCaseResponse(c models.Case) caseResponse {
	return caseResponse{Case: c, Badge: services.CaseStatusBadge(c.Status)}
}

func toCaseResponses(cases []models.Case) []caseResponse {
	out := make([]caseResponse, len(cases))
	for i, c := range cases {
		out[i] = toCaseResponse(c)
	}
	return out
}

// ListCasesHandler returns cases, optionally filtered by query params
func ListCasesHandler(c echo.Context) error {
	cases, err := services.ListCases(db.DB, services.CaseFilter{
		Status:       c.QueryParam("status"),
		ClientID:     c.QueryParam("client_id"),
		AttorneyID:   c.QueryParam("attorney_id"),
		PracticeArea: c.QueryParam("practice_area"),
	})
	if err != nil {
		c.Logger().Errorf("failed to list cases: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list cases")
	}
	return c.JSON(http.StatusOK, toCaseResponses(cases))
}

type createCaseRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PracticeArea    string   `json:"practice_area"`
	ClientID        string   `json:"client_id"`
	AttorneyID      *string  `json:"attorney_id"`
	NextHearingDate *string  `json:"next_hearing_date"`
	SettlementAmount *float64 `json:"settlement_amount"`
}

// CreateCaseHandler opens a new matter. The case number is generated
// server-side.
func CreateCaseHandler(c echo.Context) error {
	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.ClientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and client are required")
	}

	newCase := models.Case{
		Title:            services.SanitizeText(req.Title),
		Description:      services.SanitizeText(req.Description),
		PracticeArea:     req.PracticeArea,
		ClientID:         req.ClientID,
		AttorneyID:       req.AttorneyID,
		SettlementAmount: req.SettlementAmount,
	}
	if req.NextHearingDate != nil && *req.NextHearingDate != "" {
		t, err := time.Parse("2006-01-02", *req.NextHearingDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid next_hearing_date, expected YYYY-MM-DD")
		}
		newCase.NextHearingDate = &t
	}

	cfg := c.Get("config").(*config.Config)
	if err := services.CreateCase(db.DB, cfg.CaseNumberPrefix, &newCase); err != nil {
		c.Logger().Errorf("failed to create case: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create case")
	}

	return c.JSON(http.StatusCreated, toCaseResponse(newCase))
}

// GetCaseHandler returns one case by ID
func GetCaseHandler(c echo.Context) error {
	found, err := services.GetCase(db.DB, c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load case")
	}
	return c.JSON(http.StatusOK, toCaseResponse(*found))
}

// UpdateCaseHandler applies staff edits to a case
func UpdateCaseHandler(c echo.Context) error {
	var updates map[string]interface{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	updated, err := services.UpdateCase(db.DB, c.Param("id"), updates)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		}
		c.Logger().Errorf("failed to update case: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update case")
	}
	return c.JSON(http.StatusOK, toCaseResponse(*updated))
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateCaseStatusHandler moves a case to a new lifecycle status
func UpdateCaseStatusHandler(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	updated, err := services.UpdateCaseStatus(db.DB, c.Param("id"), req.Status)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toCaseResponse(*updated))
}
