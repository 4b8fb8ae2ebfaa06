package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"examer/internal/service"
)

// SubmissionHandler handles answer submission endpoints.
type SubmissionHandler struct {
	submissionService service.SubmissionService
	authService       service.AuthService
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(submissionService service.SubmissionService, authService service.AuthService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, authService: authService}
}

// SubmitRequest represents an answer submission request.
type SubmitRequest struct {
	Answers map[string]interface{} `json:"answers" validate:"required"`
}

// Submit godoc
// @Summary Submit answers for an assessment
// @Description Student-only. One submission per student per assessment.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param request body SubmitRequest true "Keyed answers"
// @Success 201 {object} model.Submission
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /assessments/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	actor, err := h.authService.Resolve(c.Request().Context(), bearerToken(c))
	if err != nil {
		return domainError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	submission, err := h.submissionService.Submit(c.Request().Context(), actor, uint(id), req.Answers)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, submission)
}

// List godoc
// @Summary List submissions for an assessment
// @Description A teacher sees every submission; a student sees only their own.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {array} model.Submission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assessments/{id}/submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	actor, err := h.authService.Resolve(c.Request().Context(), bearerToken(c))
	if err != nil {
		return domainError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	submissions, err := h.submissionService.ListByAssessment(c.Request().Context(), actor, uint(id))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, submissions)
}
