package token

import (
	"encoding/hex"
	"hash"
	"io"
	"strings"

	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const (
	// SecretLength is the length of the random part of a token.
	SecretLength = 40
	// separator splits the token ID from its secret.
	separator = "|"
)

type (
	// An Authority issues, resolves and revokes bearer tokens.
	Authority interface {
		// Issue creates a new token for the given user and returns its plaintext value.
		// The plaintext is never stored and cannot be retrieved afterwards.
		Issue(user *model.User, userAgent string) (string, error)
		// Resolve returns the owner of the presented token.
		Resolve(presented string) (*model.User, error)
		// RevokeAll deletes all the tokens of the given user.
		RevokeAll(user *model.User) error
	}

	authority struct {
		db  database.Client
		key []byte
	}
)

// NewAuthority returns a new Authority.
// The digest key is derived from the given secret.
func NewAuthority(db database.Client, secret []byte) Authority {
	return &authority{
		db:  db,
		key: DeriveKey(blake2b.Size256, secret),
	}
}

func (a *authority) Issue(user *model.User, userAgent string) (string, error) {
	secret := SecureToken(SecretLength)

	token := &model.Token{
		UserID:    user.ID,
		Digest:    a.digest(secret),
		UserAgent: userAgent,
	}
	if err := a.db.Save(token); err != nil {
		return "", errors.Wrap(err, "could not persist token")
	}

	return token.ID + separator + secret, nil
}

func (a *authority) Resolve(presented string) (*model.User, error) {
	id, secret, ok := strings.Cut(presented, separator)
	if !ok || id == "" || secret == "" {
		return nil, invalid(nil)
	}

	token, err := a.db.FindToken(id)
	if err != nil {
		if a.db.IsNotFound(err) {
			return nil, invalid(err)
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if !SecureCompare(a.digest(secret), token.Digest) {
		return nil, invalid(nil)
	}

	user, err := a.db.FindUser(token.UserID)
	if err != nil {
		if a.db.IsNotFound(err) {
			return nil, invalid(err)
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	return user, nil
}

func (a *authority) RevokeAll(user *model.User) error {
	return errors.Wrap(a.db.DeleteTokensByUserID(user.ID), "could not revoke tokens")
}

func (a *authority) digest(secret string) string {
	h, err := blake2b.New256(a.key)
	if err != nil {
		panic(err) // key length is always valid
	}
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil))
}

func invalid(err error) error {
	return apperror.Wrap(err, apperror.Authentication, apperror.MessageUnauthenticated)
}

// DeriveKey derives a key of the given length from k using HKDF with BLAKE2b.
func DeriveKey(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, []byte("pantry token digest"))
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}
