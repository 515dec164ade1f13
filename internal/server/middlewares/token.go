package middlewares

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/internal/server/token"
)

// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
const CurrentUserContextKey = "current_user"

// Token returns a bearer token auth middleware.
// It resolves the identity once and stores current_user into echo.Context.
func Token(authority token.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if presented == "" {
				return apperror.New(apperror.Authentication, apperror.MessageUnauthenticated)
			}

			user, err := authority.Resolve(presented)
			if err != nil {
				return err
			}

			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by the Token middleware.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}

func bearer(authorization string) string {
	scheme, credentials, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(credentials)
}
