package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"examer/internal/service"
)

// SeedHandler handles demo data seeding.
type SeedHandler struct {
	seedService service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seedService service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedDemoResponse represents the seed response.
type SeedDemoResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}

// SeedDemo godoc
// @Summary Seed demo users and a demo assessment
// @Tags seed
// @Produce json
// @Success 200 {object} SeedDemoResponse
// @Failure 500 {object} map[string]string
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	created, err := h.seedService.SeedDemo(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": "seeding failed",
		})
	}
	return c.JSON(http.StatusOK, SeedDemoResponse{
		Message: "demo data seeded",
		Created: created,
	})
}
