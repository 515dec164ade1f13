package middlewares

import (
	"github.com/labstack/echo/v4"
)

// ForceJSON overrides the Accept header of the request so every response is negotiated as JSON,
// whatever the client asked for.
func ForceJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Request().Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
			return next(c)
		}
	}
}
