package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"campusmarket/internal/apperr"
	"campusmarket/internal/config"
	"campusmarket/internal/handler"
	appmw "campusmarket/internal/middleware"
	"campusmarket/internal/model"
	"campusmarket/internal/service"
)

const (
	loginAttemptsPerMinute     = 5
	loginAttemptsPerMinuteTest = 1000
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	listingHandler *handler.ListingHandler,
	listingService service.ListingService,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowCredentials: true,
	}))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "OK"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/", "web")

	api := e.Group("/api")

	loginLimit := loginAttemptsPerMinute
	if cfg.IsTest() {
		loginLimit = loginAttemptsPerMinuteTest
	}
	loginLimiter := appmw.NewLoginRateLimiter(loginLimit)

	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/login", authHandler.LogIn, loginLimiter.Middleware())

	authenticated := appmw.Authenticate(cfg.JWTSecret)
	adminOnly := appmw.AuthorizeRoles(model.RoleAdmin)
	ownerOrAdmin := appmw.AuthorizeListingOwner(listingService)

	users := api.Group("/users", authenticated)
	users.GET("", userHandler.GetAllUsers, adminOnly)
	users.GET("/me", userHandler.GetCurrentUser)
	users.PUT("/me", userHandler.UpdateCurrentUser)
	users.DELETE("/me", userHandler.DeleteCurrentUser)
	users.GET("/me/listings", userHandler.GetCurrentUserListings)
	users.PATCH("/:id/role", userHandler.UpdateUserRole, adminOnly)

	listings := api.Group("/listings")
	listings.GET("", listingHandler.GetAllListings)
	listings.GET("/:id", listingHandler.GetListingByID)
	listings.POST("", listingHandler.CreateListing, authenticated)
	listings.PUT("/:id", listingHandler.UpdateListing, authenticated, ownerOrAdmin)
	listings.DELETE("/:id", listingHandler.DeleteListing, authenticated, ownerOrAdmin)
}

// ErrorHandler is the single serialization point for failures. Services and
// middleware raise classified errors; everything else is suppressed to a
// generic 500 with the cause logged server-side.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		if errors.Is(err, echo.ErrNotFound) {
			message = "Endpoint not found"
		}
		_ = c.JSON(httpErr.Code, echo.Map{"success": false, "message": message})
		return
	}

	appErr := apperr.FromError(err)
	if appErr.Kind == apperr.KindInternal {
		c.Logger().Error(err)
	}

	body := echo.Map{"success": false, "message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	_ = c.JSON(appErr.Status, body)
}
