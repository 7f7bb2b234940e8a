package handlers

import (
	"net/http"
	"strconv"

	"SwipeEstate/models"
	"SwipeEstate/services"
	"SwipeEstate/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ListingController struct {
	listings *services.ListingService
	logger   *zap.Logger
}

func NewListingController(listings *services.ListingService, logger *zap.Logger) *ListingController {
	return &ListingController{listings: listings, logger: logger}
}

func (lc *ListingController) ListListings(c echo.Context) error {
	filter, ok := listingFilterFromQuery(c)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "Invalid owner_id"})
	}

	listings, err := lc.listings.ListActive(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (lc *ListingController) GetListing(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing ID"})
	}

	listing, err := lc.listings.GetActive(c.Request().Context(), id)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (lc *ListingController) CreateListing(c echo.Context) error {
	var req models.ListingRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	listing, err := lc.listings.Create(c.Request().Context(), currentUser(c), req)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusCreated, listing)
}

func (lc *ListingController) UpdateListing(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing ID"})
	}
	var req models.ListingRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	listing, err := lc.listings.Update(c.Request().Context(), currentUser(c), id, req)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (lc *ListingController) DeleteListing(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing ID"})
	}

	if err := lc.listings.SoftDelete(c.Request().Context(), currentUser(c), id); err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// listingFilterFromQuery reads city, owner_id, page and limit. Unparseable
// page or limit values fall back to the defaults.
func listingFilterFromQuery(c echo.Context) (services.ListingFilter, bool) {
	filter := services.ListingFilter{City: c.QueryParam("city")}

	if raw := c.QueryParam("owner_id"); raw != "" {
		ownerID, ok := utils.ParseID(raw)
		if !ok {
			return filter, false
		}
		filter.OwnerID = &ownerID
	}
	if p := c.QueryParam("page"); p != "" {
		if num, err := strconv.Atoi(p); err == nil && num > 0 {
			filter.Page = num
		}
	}
	if l := c.QueryParam("limit"); l != "" {
		if num, err := strconv.Atoi(l); err == nil && num > 0 {
			filter.Limit = num
		}
	}
	return filter, true
}
