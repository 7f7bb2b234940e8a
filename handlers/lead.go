package handlers

import (
	"net/http"

	"SwipeEstate/models"
	"SwipeEstate/services"
	"SwipeEstate/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LeadController struct {
	leads  *services.LeadService
	logger *zap.Logger
}

func NewLeadController(leads *services.LeadService, logger *zap.Logger) *LeadController {
	return &LeadController{leads: leads, logger: logger}
}

func (lc *LeadController) CreateLead(c echo.Context) error {
	var req models.LeadRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	lead, err := lc.leads.Create(c.Request().Context(), currentUser(c).ID, req)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, lead)
}

func (lc *LeadController) MyLeads(c echo.Context) error {
	leads, err := lc.leads.ListForTenant(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, leads)
}

func (lc *LeadController) LeadsForMe(c echo.Context) error {
	leads, err := lc.leads.ListForOwner(c.Request().Context(), currentUser(c))
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, leads)
}

func (lc *LeadController) UpdateLeadStatus(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid lead ID"})
	}
	var req models.LeadStatusRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	lead, err := lc.leads.UpdateStatus(c.Request().Context(), currentUser(c), id, req.Status)
	if err != nil {
		return respondError(c, lc.logger, err)
	}
	return c.JSON(http.StatusOK, lead)
}
