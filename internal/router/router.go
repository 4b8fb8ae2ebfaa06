package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"examer/internal/config"
	"examer/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	assessmentHandler *handler.AssessmentHandler,
	submissionHandler *handler.SubmissionHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/users/:id", userHandler.GetProfile)
	api.PUT("/users/:id", userHandler.UpdateProfile)
	api.DELETE("/users/:id", userHandler.DeleteUser)
	api.GET("/assessments", assessmentHandler.Search)
	api.GET("/seed/demo", seedHandler.SeedDemo)

	// Secured routes (require JWT authentication). The middleware rejects
	// malformed and expired tokens; handlers re-resolve the token through
	// the auth service, which also checks revocation.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.PATCH("/auth/password", authHandler.ChangePassword)
	secured.POST("/users/me/image", userHandler.UploadProfileImage)

	secured.POST("/assessments", assessmentHandler.Create)
	secured.GET("/assessments/:id", assessmentHandler.GetDetail)
	secured.PUT("/assessments/:id", assessmentHandler.Update)
	secured.DELETE("/assessments/:id", assessmentHandler.Delete)

	secured.POST("/assessments/:id/submissions", submissionHandler.Submit)
	secured.GET("/assessments/:id/submissions", submissionHandler.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
