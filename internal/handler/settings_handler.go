package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nightfall/internal/model"
	"nightfall/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

// Request/Response types

type storySettingsRequest = service.StorySettingsPatch

type storySettingsResponse = model.StorySettings

type providerTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/story", h.GetStorySettings)
	g.PUT("/settings/story", h.UpdateStorySettings)
	g.POST("/settings/story/test", h.TestProvider)
}

// GetStorySettings returns the story generation settings.
// @Summary Get story settings
// @Description Get the generation variant, strict mode and image settings
// @Tags settings
// @Produce json
// @Success 200 {object} storySettingsResponse
// @Failure 500 {object} errorResponse
// @Router /settings/story [get]
func (h *SettingsHandler) GetStorySettings(c echo.Context) error {
	settings, err := h.service.GetStorySettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return Error(c, http.StatusInternalServerError, "failed to get settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateStorySettings updates the story generation settings.
// @Summary Update story settings
// @Description Update any subset of the story settings. Omitted fields are unchanged.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body storySettingsRequest true "Story settings"
// @Success 200 {object} storySettingsResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/story [put]
func (h *SettingsHandler) UpdateStorySettings(c echo.Context) error {
	var req storySettingsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	settings, err := h.service.SetStorySettings(c.Request().Context(), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// TestProvider checks the configured text provider.
// @Summary Test text provider
// @Description Send a short prompt to the configured text provider
// @Tags settings
// @Produce json
// @Success 200 {object} providerTestResponse
// @Router /settings/story/test [post]
func (h *SettingsHandler) TestProvider(c echo.Context) error {
	reply, err := h.service.TestProvider(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, providerTestResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, providerTestResponse{
		Success: true,
		Message: reply,
	})
}
