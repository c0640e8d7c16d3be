package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
)

// UserService implements user administration. Every operation here is
// role-gated to SuperUser at the route level.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, errs.NotFound("User not found")
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("User not found")
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

// Update applies the present fields of patch to the user record.
func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, errs.Validation("Invalid role")
		}
		user.Role = *patch.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errs.Conflict("Username or email already taken")
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

// Delete removes the user permanently.
func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return errs.NotFound("User not found")
	}

	if err := s.users.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.NotFound("User not found")
		}
		return errs.Internal(err)
	}
	return nil
}
