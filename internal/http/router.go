package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "nightfall/docs"
	"nightfall/internal/handler"
)

const generationIDHeader = handler.GenerationIDHeader

func NewRouter(
	storyHandler *handler.StoryHandler,
	settingsHandler *handler.SettingsHandler,
	healthHandler *handler.HealthHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		ExposeHeaders: []string{handler.GenerationIDHeader, echo.HeaderXRequestID},
	}))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	storyHandler.RegisterRoutes(api)
	settingsHandler.RegisterRoutes(api)
	healthHandler.RegisterRoutes(api)

	registerStatic(e, staticDir)

	return e
}
