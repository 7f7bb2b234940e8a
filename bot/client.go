package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"SwipeEstate/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrUnauthorized means the backend refused the session token.
var ErrUnauthorized = errors.New("backend rejected the session token")

const actionSource = "telegram"

// BackendClient talks to the REST API on behalf of bot users.
type BackendClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewBackendClient(baseURL string, timeout time.Duration, logger *zap.Logger) *BackendClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &BackendClient{httpClient: client, logger: logger}
}

// LoginOrRegister exchanges a Telegram identity for a backend access token.
func (c *BackendClient) LoginOrRegister(ctx context.Context, telegramID int64, phone, name string) (string, error) {
	body := map[string]string{
		"telegram_id": fmt.Sprintf("%d", telegramID),
		"phone":       phone,
		"name":        name,
		"role":        models.RoleTenant,
	}

	var token models.TokenResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&token).
		Post("/auth/telegram/login-or-register")
	if err := c.check(resp, err, "login-or-register"); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", errors.New("backend returned an empty access token")
	}
	return token.AccessToken, nil
}

// NextListing returns nil when the feed is exhausted.
func (c *BackendClient) NextListing(ctx context.Context, token string) (*models.Listing, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/feed/next")
	if err := c.check(resp, err, "feed next"); err != nil {
		return nil, err
	}

	var listing *models.Listing
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("decode next listing: %w", err)
	}
	return listing, nil
}

func (c *BackendClient) SendAction(ctx context.Context, token string, listingID uint, action string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]interface{}{
			"listing_id": listingID,
			"action":     action,
			"source":     actionSource,
		}).
		Post("/feed/action")
	return c.check(resp, err, "feed action")
}

func (c *BackendClient) Favorites(ctx context.Context, token string) ([]models.Listing, error) {
	var listings []models.Listing
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&listings).
		Get("/favorites/")
	if err := c.check(resp, err, "favorites"); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *BackendClient) MyLeads(ctx context.Context, token string) ([]models.Lead, error) {
	var leads []models.Lead
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&leads).
		Get("/leads/my")
	if err := c.check(resp, err, "my leads"); err != nil {
		return nil, err
	}
	return leads, nil
}

func (c *BackendClient) check(resp *resty.Response, err error, call string) error {
	if err != nil {
		c.logger.Error("backend call failed", zap.String("call", call), zap.Error(err))
		return fmt.Errorf("backend %s: %w", call, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.IsError() {
		c.logger.Warn("backend returned error",
			zap.String("call", call),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return fmt.Errorf("backend %s: status %d", call, resp.StatusCode())
	}
	return nil
}
