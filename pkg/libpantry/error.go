package libpantry

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// An APIError reprensents an HTTP error returned by Pantry server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func parseAPIError(r io.Reader, code int) error {
	aerr := APIError{StatusCode: code}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&aerr); err != nil || aerr.Message == "" {
		aerr.Message = http.StatusText(code)
	}
	return &aerr
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound returns true if err is an APIError with a 404 status code.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthenticated returns true if err is an APIError with a 401 status code.
func IsUnauthenticated(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden returns true if err is an APIError with a 403 status code.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	var aerr *APIError
	return errors.As(err, &aerr) && aerr.StatusCode == code
}
