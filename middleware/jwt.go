package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"SwipeEstate/models"
	"SwipeEstate/policy"
	"SwipeEstate/services"

	"github.com/labstack/echo/v4"
)

// Authenticator resolves a bearer token to an active account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware loads the caller's account and stores it as "user", with
// "user_id" and "user_role" alongside for handlers that only need those.
func JWTMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "Not authenticated")
			}

			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || tokenParts[1] == "" {
				return unauthorized(c, "Invalid authorization header format")
			}

			user, err := auth.Authenticate(c.Request().Context(), tokenParts[1])
			if err != nil {
				var svcErr *services.Error
				if errors.As(err, &svcErr) && errors.Is(err, services.ErrUnauthorized) {
					return unauthorized(c, svcErr.Message)
				}
				return err
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)
			c.Set("user_role", user.Role)

			return next(c)
		}
	}
}

// RequireAdmin must run after JWTMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*models.User)
			if !policy.Can(user, policy.Administer, nil) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Admin access required",
				})
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error": message,
	})
}
