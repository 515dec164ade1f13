package service

import (
	"strings"

	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/pkg/errors"
)

type (
	// A UserService handles registration and authentication of users.
	UserService interface {
		// Register creates a new user.
		Register(params RegisterParams) (*model.User, error)
		// Authenticate returns the user matching the given credentials.
		Authenticate(params LoginParams) (*model.User, error)
	}

	// RegisterParams are used to register a user.
	RegisterParams struct {
		Params
		Email    string `json:"email"    validate:"required,email,max=255"`
		Password string `json:"password" validate:"required,min=8"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Params
		Email    string `json:"email"    validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	userService struct {
		db database.Client
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client) UserService {
	return &userService{
		db: db,
	}
}

func (s *userService) Register(params RegisterParams) (*model.User, error) {
	params.Email = normalizeEmail(params.Email)
	if err := validate.Struct(params); err != nil {
		return nil, apperror.NewValidation(err)
	}

	user := &model.User{
		Email: params.Email,
	}

	var err error
	user.Password, err = hashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	// The unique index is checked in the write transaction,
	// concurrent registrations of the same email can not both succeed.
	if err = s.db.Save(user); err != nil {
		if s.db.IsAlreadyExists(err) {
			return nil, apperror.NewValidation(err)
		}
		return nil, errors.Wrap(err, "could not persist user")
	}

	return user, nil
}

func (s *userService) Authenticate(params LoginParams) (*model.User, error) {
	params.Email = normalizeEmail(params.Email)
	if err := validate.Struct(params); err != nil {
		return nil, apperror.NewValidation(err)
	}

	// Unknown email and wrong password share the same error.
	user, err := s.db.FindUserByMail(params.Email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	ok, err := verifyPassword(params.Password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidCredentials()
	}

	return user, nil
}

func invalidCredentials() error {
	return apperror.New(apperror.Authentication, apperror.MessageInvalidCredentials)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
