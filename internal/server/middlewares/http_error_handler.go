package middlewares

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a handler that renders errors as `{"error": "<message>"}`.
//
// Known kinds are checked in this order: not found, authorization, authentication and validation.
// Everything else, including recovered panics, falls back to a generic bad request
// and is logged with a correlation id.
func HTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch kind := apperror.KindOf(err); kind {
		case apperror.NotFound, apperror.Authorization, apperror.Authentication, apperror.Validation:
			logger.WithError(err).Debugf("Error [%s %s]", c.Request().Method, c.Request().URL.Path)
			render(c, apperror.StatusCode(kind), apperror.Message(err))
			return
		}

		var herr *echo.HTTPError
		if errors.As(err, &herr) && herr.Code < http.StatusInternalServerError {
			logger.WithError(herr).Debug("Error [ECHO]")
			render(c, herr.Code, message(herr.Code))
			return
		}

		unexpected(logger, err, c)
	}
}

func unexpected(logger logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	logger.WithField("id", id).WithError(err).Errorf("Unexpected error [%s %s]", c.Request().Method, c.Request().URL.Path)

	render(c, http.StatusBadRequest, apperror.MessageInvalidRequest)
}

func render(c echo.Context, code int, message string) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": message})
}

func message(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return apperror.MessageUnauthenticated
	case http.StatusForbidden:
		return apperror.MessageUnauthorized
	case http.StatusNotFound:
		return apperror.MessageNotFound
	case http.StatusBadRequest:
		return apperror.MessageInvalidRequest
	default:
		return http.StatusText(code)
	}
}
