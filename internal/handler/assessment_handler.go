package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"examer/internal/service"
)

// AssessmentHandler handles assessment endpoints.
type AssessmentHandler struct {
	assessmentService service.AssessmentService
	authService       service.AuthService
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessmentService service.AssessmentService, authService service.AuthService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService, authService: authService}
}

// AssessmentRequest represents an assessment create or update request.
type AssessmentRequest struct {
	SubjectName string                 `json:"subject_name" validate:"required"`
	Date        string                 `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string                 `json:"time" validate:"required,datetime=15:04"`
	Questions   map[string]interface{} `json:"questions" validate:"required"`
}

// SearchResponse represents a page of matching assessments.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// SearchResult is one row of a subject-name search.
type SearchResult struct {
	ID          uint   `json:"id"`
	SubjectName string `json:"subject_name"`
}

func (h *AssessmentHandler) input(req AssessmentRequest) service.AssessmentInput {
	return service.AssessmentInput{
		SubjectName: req.SubjectName,
		Date:        req.Date,
		StartTime:   req.Time,
		Questions:   req.Questions,
	}
}

// Create godoc
// @Summary Create an assessment
// @Description Teacher-only. The acting user becomes the immutable creator.
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssessmentRequest true "Assessment definition"
// @Success 201 {object} model.Assessment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) Create(c echo.Context) error {
	actor, err := h.authService.Resolve(c.Request().Context(), bearerToken(c))
	if err != nil {
		return domainError(err)
	}

	var req AssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assessment, err := h.assessmentService.Create(c.Request().Context(), actor, h.input(req))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, assessment)
}

// Search godoc
// @Summary Search assessments by subject name
// @Description Substring match with offset pagination. An empty page is a normal result.
// @Tags assessments
// @Produce json
// @Param query query string false "Subject substring"
// @Param page query int false "Zero-based page number"
// @Param limit query int false "Page size"
// @Success 200 {object} SearchResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /assessments [get]
func (h *AssessmentHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	assessments, err := h.assessmentService.Search(c.Request().Context(), query, page, limit)
	if err != nil {
		return domainError(err)
	}

	results := make([]SearchResult, 0, len(assessments))
	for _, a := range assessments {
		results = append(results, SearchResult{ID: a.ID, SubjectName: a.SubjectName})
	}
	return c.JSON(http.StatusOK, SearchResponse{
		Results: results,
		Page:    page,
		Limit:   limit,
	})
}

// GetDetail godoc
// @Summary Get assessment detail
// @Description Question bodies are redacted to a placeholder for student callers.
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} service.AssessmentDetail
// @Failure 400 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetDetail(c echo.Context) error {
	actor, err := h.authService.Resolve(c.Request().Context(), bearerToken(c))
	if err != nil {
		return domainError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	detail, err := h.assessmentService.GetDetail(c.Request().Context(), actor, uint(id))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update godoc
// @Summary Update an assessment
// @Description Only the creating teacher may update.
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param request body AssessmentRequest true "Assessment definition"
// @Success 200 {object} model.Assessment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assessments/{id} [put]
func (h *AssessmentHandler) Update(c echo.Context) error {
	actor, err := h.authService.Resolve(c.Request().Context(), bearerToken(c))
	if err != nil {
		return domainError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req AssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assessment, err := h.assessmentService.Update(c.Request().Context(), actor, uint(id), h.input(req))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, assessment)
}

// Delete godoc
// @Summary Delete an assessment
// @Description Only the creating teacher may delete. Hard delete, no tombstone.
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) Delete(c echo.Context) error {
	actor, err := h.authService.Resolve(c.Request().Context(), bearerToken(c))
	if err != nil {
		return domainError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.assessmentService.Delete(c.Request().Context(), actor, uint(id)); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "assessment removed",
	})
}
