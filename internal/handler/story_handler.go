package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nightfall/internal/service"
)

// GenerationIDHeader carries the id a story was logged under.
const GenerationIDHeader = "X-Generation-Id"

const storyFailedMessage = "Failed to generate story."

type StoryHandler struct {
	service       service.StoryService
	exposeDetails bool
}

// NewStoryHandler creates a story handler. exposeDetails adds the underlying
// error to failure responses and must be false in production.
func NewStoryHandler(service service.StoryService, exposeDetails bool) *StoryHandler {
	return &StoryHandler{service: service, exposeDetails: exposeDetails}
}

func (h *StoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/story", h.GetStory)
}

// GetStory generates a new story with illustrations.
// @Summary Generate a story
// @Description Generate a short scary story, its title and illustration URLs. Every call generates a new story.
// @Tags story
// @Produce json
// @Success 200 {object} model.Story
// @Header 200 {string} X-Generation-Id "Generation id"
// @Header 500 {string} X-Generation-Id "Generation id"
// @Failure 500 {object} errorResponse
// @Router /story [get]
func (h *StoryHandler) GetStory(c echo.Context) error {
	gen, err := h.service.Generate(c.Request().Context())
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			setGenerationID(c, genErr.ID)
		}
		resp := errorResponse{Error: storyFailedMessage}
		if h.exposeDetails {
			resp.Details = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}

	setGenerationID(c, gen.ID)
	return c.JSON(http.StatusOK, gen.Story)
}

func setGenerationID(c echo.Context, id int64) {
	c.Response().Header().Set(GenerationIDHeader, strconv.FormatInt(id, 10))
}
