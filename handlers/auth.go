package handlers

import (
	"net/http"

	"SwipeEstate/models"
	"SwipeEstate/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	accounts *services.AccountService
	logger   *zap.Logger
}

func NewAuthController(accounts *services.AccountService, logger *zap.Logger) *AuthController {
	return &AuthController{accounts: accounts, logger: logger}
}

func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	user, err := ac.accounts.Register(c.Request().Context(), services.RegisterInput{
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, ac.logger, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login takes the OAuth2 password form: username is an email or a phone.
func (ac *AuthController) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"error": "username and password are required",
		})
	}

	token, err := ac.accounts.Login(c.Request().Context(), username, password)
	if err != nil {
		return respondError(c, ac.logger, err)
	}
	return c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (ac *AuthController) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (ac *AuthController) TelegramLoginOrRegister(c echo.Context) error {
	var req models.TelegramAuthRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	token, err := ac.accounts.LoginOrCreateViaExternal(c.Request().Context(), services.ExternalLoginInput{
		TelegramID: req.TelegramID,
		Phone:      req.Phone,
		Name:       req.Name,
		Role:       req.Role,
	})
	if err != nil {
		return respondError(c, ac.logger, err)
	}
	return c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
