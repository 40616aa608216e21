package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nightfall/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return Error(c, http.StatusBadRequest, err.Error())
	default:
		c.Logger().Error(err)
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
