package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
)

func newUserService(t *testing.T) (*UserService, *repositories.MemoryUserRepository) {
	t.Helper()
	users := repositories.NewMemoryUserRepository()
	return NewUserService(users), users
}

func seedUser(t *testing.T, users *repositories.MemoryUserRepository, username, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: email, Role: role}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUserUpdatePatchSemantics(t *testing.T) {
	svc, users := newUserService(t)
	ctx := context.Background()
	u := seedUser(t, users, "maria", "maria@example.com", models.RoleUser)

	name := "maria-v2"
	updated, err := svc.Update(ctx, u.ID.Hex(), models.UserPatch{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "maria-v2", updated.Username)
	assert.Equal(t, "maria@example.com", updated.Email, "absent fields untouched")
	assert.Equal(t, models.RoleUser, updated.Role)
}

func TestUserUpdateRole(t *testing.T) {
	svc, users := newUserService(t)
	ctx := context.Background()
	u := seedUser(t, users, "maria", "maria@example.com", models.RoleUser)

	admin := models.RoleAdmin
	updated, err := svc.Update(ctx, u.ID.Hex(), models.UserPatch{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	bogus := models.Role("Wizard")
	_, err = svc.Update(ctx, u.ID.Hex(), models.UserPatch{Role: &bogus})
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestUserUpdateDuplicate(t *testing.T) {
	svc, users := newUserService(t)
	ctx := context.Background()
	seedUser(t, users, "maria", "maria@example.com", models.RoleUser)
	other := seedUser(t, users, "carlos", "carlos@example.com", models.RoleUser)

	taken := "maria@example.com"
	_, err := svc.Update(ctx, other.ID.Hex(), models.UserPatch{Email: &taken})
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestUserDelete(t *testing.T) {
	svc, users := newUserService(t)
	ctx := context.Background()
	u := seedUser(t, users, "maria", "maria@example.com", models.RoleUser)

	require.NoError(t, svc.Delete(ctx, u.ID.Hex()))

	err := svc.Delete(ctx, u.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	err = svc.Delete(ctx, "not-an-id")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestUserGetAndList(t *testing.T) {
	svc, users := newUserService(t)
	ctx := context.Background()
	u := seedUser(t, users, "maria", "maria@example.com", models.RoleUser)
	seedUser(t, users, "carlos", "carlos@example.com", models.RoleAdmin)

	got, err := svc.Get(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "maria", got.Username)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
