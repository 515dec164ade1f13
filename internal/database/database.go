package database

import (
	"github.com/mdouchement/pantry/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Update updates an existing entry in database with the given model.
		// It fails with a not found error when the entry does not exist.
		Update(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is a unique constraint violation.
		IsAlreadyExists(err error) bool

		UserInteraction
		TokenInteraction
		ItemInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
	}

	// A TokenInteraction defines all the methods used to interact with a token record.
	TokenInteraction interface {
		// FindToken returns the token for the given id (UUID).
		FindToken(id string) (*model.Token, error)
		// FindTokensByUserID returns all the tokens for the given user id.
		FindTokensByUserID(userID string) ([]*model.Token, error)
		// DeleteTokensByUserID deletes all the tokens of the given user id.
		// It does not fail when the user has no token.
		DeleteTokensByUserID(userID string) error
	}

	// An ItemInteraction defines all the methods used to interact with a item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItemsByUserID returns all the items of the given user id ordered by creation date.
		FindItemsByUserID(userID string) ([]*model.Item, error)
		// DeleteItem deletes the item matching the given parameters.
		DeleteItem(id, userID string) error
	}
)
