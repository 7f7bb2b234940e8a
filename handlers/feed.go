package handlers

import (
	"net/http"

	"SwipeEstate/models"
	"SwipeEstate/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FeedController struct {
	feed   *services.FeedService
	logger *zap.Logger
}

func NewFeedController(feed *services.FeedService, logger *zap.Logger) *FeedController {
	return &FeedController{feed: feed, logger: logger}
}

// NextListing answers JSON null once the user has seen every active listing.
func (fc *FeedController) NextListing(c echo.Context) error {
	listing, err := fc.feed.Next(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, fc.logger, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (fc *FeedController) RecordAction(c echo.Context) error {
	var req models.FeedActionRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	if err := fc.feed.RecordAction(c.Request().Context(), currentUser(c).ID, req); err != nil {
		return respondError(c, fc.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
