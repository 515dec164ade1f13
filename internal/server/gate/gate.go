// Package gate decides whether an identity may act on a resource.
//
// The only rule is ownership: a resource can be read or modified by the user who owns it.
// There are no roles, no delegation and no admin override.
// The gate must be called once the resource is known to exist,
// so a missing resource is reported as not found rather than forbidden.
package gate

import (
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/model"
)

// Authorize returns nil if identity owns the resource.
func Authorize(identity *model.User, resource model.Owned) error {
	if identity == nil || resource == nil || identity.ID == "" {
		return forbidden()
	}

	if resource.GetUserID() != identity.ID {
		return forbidden()
	}
	return nil
}

func forbidden() error {
	return apperror.New(apperror.Authorization, apperror.MessageUnauthorized)
}
