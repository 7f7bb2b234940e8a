package handlers

import (
	"net/http"

	"SwipeEstate/models"
	"SwipeEstate/services"
	"SwipeEstate/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FavoriteController struct {
	favorites *services.FavoriteService
	logger    *zap.Logger
}

func NewFavoriteController(favorites *services.FavoriteService, logger *zap.Logger) *FavoriteController {
	return &FavoriteController{favorites: favorites, logger: logger}
}

func (fc *FavoriteController) CreateFavorite(c echo.Context) error {
	var req models.FavoriteRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	favorite, err := fc.favorites.Add(c.Request().Context(), currentUser(c).ID, req.ListingID)
	if err != nil {
		return respondError(c, fc.logger, err)
	}
	return c.JSON(http.StatusOK, favorite)
}

func (fc *FavoriteController) GetFavorites(c echo.Context) error {
	listings, err := fc.favorites.ListListings(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, fc.logger, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (fc *FavoriteController) DeleteFavorite(c echo.Context) error {
	listingID, ok := utils.ParseID(c.Param("listing_id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing ID"})
	}

	if err := fc.favorites.Remove(c.Request().Context(), currentUser(c).ID, listingID); err != nil {
		return respondError(c, fc.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
