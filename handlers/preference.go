package handlers

import (
	"net/http"

	"SwipeEstate/models"
	"SwipeEstate/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PreferenceController struct {
	preferences *services.PreferenceService
	logger      *zap.Logger
}

func NewPreferenceController(preferences *services.PreferenceService, logger *zap.Logger) *PreferenceController {
	return &PreferenceController{preferences: preferences, logger: logger}
}

// GetPreferences answers JSON null for a user who never saved any.
func (pc *PreferenceController) GetPreferences(c echo.Context) error {
	pref, err := pc.preferences.Get(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, pc.logger, err)
	}
	return c.JSON(http.StatusOK, pref)
}

func (pc *PreferenceController) SavePreferences(c echo.Context) error {
	var req models.PreferenceRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	pref, err := pc.preferences.Upsert(c.Request().Context(), currentUser(c).ID, req)
	if err != nil {
		return respondError(c, pc.logger, err)
	}
	return c.JSON(http.StatusOK, pref)
}
