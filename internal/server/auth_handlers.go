package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/server/serializer"
	"github.com/mdouchement/pantry/internal/server/service"
	"github.com/mdouchement/pantry/internal/server/token"
)

// auth contains all authentication handlers.
type auth struct {
	users  service.UserService
	tokens token.Authority
}

///// Register
////
//

// Register handler is used to register the user.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return apperror.NewValidation(err)
	}

	user, err := h.users.Register(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id": user.ID,
	})
}

///// Login
////
//

// Login used for authenticates a user and returns a bearer token.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return apperror.NewValidation(err)
	}
	params.UserAgent = c.Request().UserAgent()

	user, err := h.users.Authenticate(params)
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user, params.UserAgent)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
	})
}

///// Logout
////
//

// Logout revokes all the tokens of the current user, on every device.
func (h *auth) Logout(c echo.Context) error {
	if err := h.tokens.RevokeAll(currentUser(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

///// User
////
//

// User renders the current user.
func (h *auth) User(c echo.Context) error {
	return c.JSON(http.StatusOK, serializer.User(currentUser(c)))
}
