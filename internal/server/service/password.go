package service

import (
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

func hashPassword(password string) (string, error) {
	digest, err := argon2.GenerateFromPasswordString(password, argon2.Default)
	return digest, errors.Wrap(err, "could not store user password safe")
}

// verifyPassword returns false on mismatch and an error only when the digest can not be used.
func verifyPassword(password, digest string) (bool, error) {
	err := argon2.CompareHashAndPasswordString(digest, password)
	if err == nil {
		return true, nil
	}
	if err == argon2.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, errors.Wrap(err, "could not validate password")
}
