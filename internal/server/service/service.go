package service

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Params are the basic fields used in requests.
type Params struct {
	UserAgent string `json:"-"`
}
