package database

import (
	"sort"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/pkg/stormcodec"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec returns the storm option that selects the named codec.
func StormCodec(name string) (func(*storm.Options) error, error) {
	c, err := stormcodec.Lookup(name)
	if err != nil {
		return nil, err
	}
	return storm.Codec(c), nil
}

// StormInit initializes Storm database.
func StormInit(database, codec string) error {
	db, err := stormOpen(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, m := range []any{&model.User{}, &model.Token{}, &model.Item{}} {
		if err := db.Init(m); err != nil {
			return errors.Wrapf(err, "could not init %T index", m)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codec string) error {
	db, err := stormOpen(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, m := range []any{&model.User{}, &model.Token{}, &model.Item{}} {
		if err := db.ReIndex(m); err != nil {
			return errors.Wrapf(err, "could not ReIndex %T", m)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database, codec string) (Client, error) {
	db, err := stormOpen(database, codec)
	if err != nil {
		return nil, err
	}

	return &strm{
		db: db,
	}, nil
}

func stormOpen(database, codec string) (*storm.DB, error) {
	option, err := StormCodec(codec)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, option)
	return db, errors.Wrap(err, "could not get database connection")
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Update updates an existing entry in database with the given model.
func (c *strm) Update(m model.Model) error {
	if m.GetID() == "" {
		return errors.Wrap(storm.ErrNotFound, "could not update the model")
	}
	m.SetUpdatedAt(time.Now().UTC())

	return errors.Wrap(c.db.Update(m), "could not update the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is a unique constraint violation.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindToken returns the token for the given id (UUID).
func (c *strm) FindToken(id string) (*model.Token, error) {
	var token model.Token
	if err := c.db.One("ID", id, &token); err != nil {
		return nil, errors.Wrap(err, "find token by id")
	}
	return &token, nil
}

// FindTokensByUserID returns all the tokens for the given user id.
func (c *strm) FindTokensByUserID(userID string) ([]*model.Token, error) {
	tokens := make([]*model.Token, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&tokens)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find tokens by user id")
	}
	return tokens, nil
}

// DeleteTokensByUserID deletes all the tokens of the given user id.
func (c *strm) DeleteTokensByUserID(userID string) error {
	err := c.db.Select(q.Eq("UserID", userID)).Delete(&model.Token{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete tokens by user id")
	}
	return nil
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItemsByUserID returns all the items of the given user id ordered by creation date.
func (c *strm) FindItemsByUserID(userID string) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.db.Select(q.Eq("UserID", userID)).Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}

	// Records are stored by ID (random UUID), not by insertion.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(*items[j].CreatedAt)
	})
	return items, nil
}

// DeleteItem deletes the item matching the given parameters.
func (c *strm) DeleteItem(id, userID string) error {
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).Delete(&model.Item{})
	return errors.Wrap(err, "could not delete item")
}
