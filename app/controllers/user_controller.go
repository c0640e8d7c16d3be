package controllers

import (
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Index lists every account.
func (u *UserController) Index(c *ctx.Context) {
	users, err := u.users.List(c.Context())
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(users)
}

// Show returns one account by id.
func (u *UserController) Show(c *ctx.Context) {
	user, err := u.users.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(user)
}

// Update applies a partial update to an account.
func (u *UserController) Update(c *ctx.Context) {
	var patch models.UserPatch
	if !c.BindJSON(&patch) {
		return
	}

	user, err := u.users.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(user)
}

// Delete removes an account.
func (u *UserController) Delete(c *ctx.Context) {
	if err := u.users.Delete(c.Context(), c.Param("id")); err != nil {
		c.FromError(err)
		return
	}
	c.SuccessMessage("User deleted", nil)
}
