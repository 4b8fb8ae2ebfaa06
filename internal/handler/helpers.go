package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "examer/internal/errors"
)

// bearerToken extracts the raw bearer token from the Authorization header.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(header, "Bearer ")
}

// domainError converts a domain error into an echo HTTP error with the
// standard error response body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
