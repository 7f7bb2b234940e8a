package handlers

import (
	"errors"
	"net/http"

	"SwipeEstate/models"
	"SwipeEstate/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is
// logged and hidden behind a 500.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	message := err.Error()
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	switch {
	case errors.Is(err, services.ErrConflict):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
	case errors.Is(err, services.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": message})
	case errors.Is(err, services.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": message})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": message})
	case errors.Is(err, services.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": message})
	}

	logger.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

// bindRequest binds and validates req, writing the error response itself.
// The returned bool is false when the handler must stop.
func bindRequest(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return true, nil
}

// currentUser returns the account resolved by the auth middleware.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get("user").(*models.User)
	return user
}
