package middlewares_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/server/middlewares"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		body   string
		logged bool
	}{
		{
			name: "not found",
			err:  errors.Wrap(apperror.NewNotFound(errors.New("not found")), "find"),
			code: http.StatusNotFound,
			body: `{"error":"No such resource"}`,
		},
		{
			name: "authorization",
			err:  apperror.New(apperror.Authorization, apperror.MessageUnauthorized),
			code: http.StatusForbidden,
			body: `{"error":"Unauthorized request"}`,
		},
		{
			name: "authentication",
			err:  apperror.New(apperror.Authentication, apperror.MessageInvalidCredentials),
			code: http.StatusUnauthorized,
			body: `{"error":"Invalid credentials"}`,
		},
		{
			name: "validation",
			err:  apperror.NewValidation(errors.New("name is required")),
			code: http.StatusBadRequest,
			body: `{"error":"Invalid request"}`,
		},
		{
			name: "echo not found",
			err:  echo.ErrNotFound,
			code: http.StatusNotFound,
			body: `{"error":"No such resource"}`,
		},
		{
			name: "echo method not allowed",
			err:  echo.ErrMethodNotAllowed,
			code: http.StatusMethodNotAllowed,
			body: `{"error":"Method Not Allowed"}`,
		},
		{
			name:   "echo server error",
			err:    echo.ErrInternalServerError,
			code:   http.StatusBadRequest,
			body:   `{"error":"Invalid request"}`,
			logged: true,
		},
		{
			name:   "unexpected",
			err:    errors.New("database not open"),
			code:   http.StatusBadRequest,
			body:   `{"error":"Invalid request"}`,
			logged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			logger.SetLevel(logrus.DebugLevel)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			rec := httptest.NewRecorder()

			middlewares.HTTPErrorHandler(logger)(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())

			entry := hook.LastEntry()
			if assert.NotNil(t, entry) {
				if tt.logged {
					assert.Equal(t, logrus.ErrorLevel, entry.Level)
					assert.NotEmpty(t, entry.Data["id"])
				} else {
					assert.Equal(t, logrus.DebugLevel, entry.Level)
				}
			}
		})
	}
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	logger, _ := test.NewNullLogger()

	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/items", nil)
	rec := httptest.NewRecorder()

	middlewares.HTTPErrorHandler(logger)(apperror.NewNotFound(nil), e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHTTPErrorHandler_Panic(t *testing.T) {
	logger, hook := test.NewNullLogger()

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = middlewares.HTTPErrorHandler(logger)
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request"}`, rec.Body.String())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestForceJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAccept, "text/html")
	rec := httptest.NewRecorder()

	err := middlewares.ForceJSON()(func(c echo.Context) error {
		assert.Equal(t, echo.MIMEApplicationJSON, c.Request().Header.Get(echo.HeaderAccept))
		return nil
	})(e.NewContext(req, rec))
	assert.NoError(t, err)
}

func TestBinder(t *testing.T) {
	e := echo.New()
	e.Binder = middlewares.NewBinder()

	var params struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := e.NewContext(req, httptest.NewRecorder()).Bind(&params)
	assert.Error(t, err)

	req = httptest.NewRequest(http.MethodPost, "/items?name=query", strings.NewReader(`{"name":"Bread"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err = e.NewContext(req, httptest.NewRecorder()).Bind(&params)
	assert.NoError(t, err)
	assert.Equal(t, "Bread", params.Name)
}
