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

// AdminController assumes the admin gate already ran on its routes.
type AdminController struct {
	accounts *services.AccountService
	listings *services.ListingService
	logger   *zap.Logger
}

func NewAdminController(accounts *services.AccountService, listings *services.ListingService, logger *zap.Logger) *AdminController {
	return &AdminController{accounts: accounts, listings: listings, logger: logger}
}

func (ac *AdminController) GetAllUsers(c echo.Context) error {
	users, err := ac.accounts.List(c.Request().Context())
	if err != nil {
		return respondError(c, ac.logger, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (ac *AdminController) UpdateUser(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}
	var req models.AdminUserUpdateRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	user, err := ac.accounts.SetRoleAndActive(c.Request().Context(), id, req.Role, req.IsActive)
	if err != nil {
		return respondError(c, ac.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetAllListings includes inactive listings unless is_active narrows it.
func (ac *AdminController) GetAllListings(c echo.Context) error {
	filter, ok := listingFilterFromQuery(c)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "Invalid owner_id"})
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "Invalid is_active"})
		}
		filter.IsActive = &active
	}

	listings, err := ac.listings.ListAll(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, ac.logger, err)
	}
	return c.JSON(http.StatusOK, listings)
}
