package server

import (
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/internal/server/token"
)

// This file is only for test purpose and is only loaded by test framework.

// TokenFromUser issues a bearer token for the given user.
func TokenFromUser(ioc IOC, u *model.User) string {
	tk, err := token.NewAuthority(ioc.Database, ioc.SecretKey).Issue(u, "test")
	if err != nil {
		panic(err)
	}
	return tk
}
