package service

import (
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/internal/server/gate"
	"github.com/pkg/errors"
)

type (
	// An ItemService handles the items of a given owner.
	// Every operation receives the authenticated identity explicitly.
	ItemService interface {
		// List returns all the items of the owner in creation order.
		List(owner *model.User) ([]*model.Item, error)
		// Create creates a new item owned by owner.
		Create(owner *model.User, params ItemParams) (*model.Item, error)
		// Get returns the item for the given id.
		Get(owner *model.User, id string) (*model.Item, error)
		// Update replaces the name and the notes of the item for the given id.
		Update(owner *model.User, id string, params ItemParams) error
		// Delete deletes the item for the given id.
		Delete(owner *model.User, id string) error
	}

	// ItemParams are used to create or update an item.
	ItemParams struct {
		Params
		Name  string `json:"name"  validate:"required"`
		Notes string `json:"notes" validate:"required"`
	}

	itemService struct {
		db database.Client
	}
)

// NewItem returns a new ItemService.
func NewItem(db database.Client) ItemService {
	return &itemService{
		db: db,
	}
}

func (s *itemService) List(owner *model.User) ([]*model.Item, error) {
	items, err := s.db.FindItemsByUserID(owner.ID)
	return items, errors.Wrap(err, "could not list items")
}

func (s *itemService) Create(owner *model.User, params ItemParams) (*model.Item, error) {
	if err := validate.Struct(params); err != nil {
		return nil, apperror.NewValidation(err)
	}

	item := &model.Item{
		UserID: owner.ID,
		Name:   params.Name,
		Notes:  params.Notes,
	}
	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}
	return item, nil
}

func (s *itemService) Get(owner *model.User, id string) (*model.Item, error) {
	return s.authorized(owner, id)
}

func (s *itemService) Update(owner *model.User, id string, params ItemParams) error {
	if err := validate.Struct(params); err != nil {
		return apperror.NewValidation(err)
	}

	item, err := s.authorized(owner, id)
	if err != nil {
		return err
	}

	item.Name = params.Name
	item.Notes = params.Notes
	if err = s.db.Update(item); err != nil {
		if s.db.IsNotFound(err) {
			return apperror.NewNotFound(err)
		}
		return errors.Wrap(err, "could not persist item")
	}
	return nil
}

func (s *itemService) Delete(owner *model.User, id string) error {
	item, err := s.authorized(owner, id)
	if err != nil {
		return err
	}

	if err = s.db.DeleteItem(item.ID, owner.ID); err != nil {
		if s.db.IsNotFound(err) {
			return apperror.NewNotFound(err)
		}
		return errors.Wrap(err, "could not delete item")
	}
	return nil
}

// authorized fetches the item then checks its ownership, in that order.
func (s *itemService) authorized(owner *model.User, id string) (*model.Item, error) {
	item, err := s.db.FindItem(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, apperror.NewNotFound(err)
		}
		return nil, errors.Wrap(err, "could not get item")
	}

	if err = gate.Authorize(owner, item); err != nil {
		return nil, err
	}
	return item, nil
}
