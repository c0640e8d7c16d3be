// Package controllers holds the thin HTTP layer: bind, call a service,
// write the envelope. No business rules live here.
package controllers

import (
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
)

type registerInput struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordInput struct {
	Password string `json:"password" validate:"required"`
}

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates an account and returns it with a fresh token.
func (a *AuthController) Register(c *ctx.Context) {
	var input registerInput
	if !c.BindJSON(&input) {
		return
	}

	user, token, err := a.auth.Register(c.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		c.FromError(err)
		return
	}

	c.Created(map[string]any{"user": user, "token": token})
}

// Login exchanges credentials for a token.
func (a *AuthController) Login(c *ctx.Context) {
	var input loginInput
	if !c.BindJSON(&input) {
		return
	}

	user, token, err := a.auth.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		c.FromError(err)
		return
	}

	c.Success(map[string]any{"user": user, "token": token})
}

// Me returns the account behind the presented token.
func (a *AuthController) Me(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}
	c.Success(user)
}

// ForgotPassword issues a reset token and mails the reset link.
func (a *AuthController) ForgotPassword(c *ctx.Context) {
	var input forgotPasswordInput
	if !c.BindJSON(&input) {
		return
	}

	if err := a.auth.RequestPasswordReset(c.Context(), input.Email); err != nil {
		c.FromError(err)
		return
	}

	c.SuccessMessage("Reset link sent", nil)
}

// ResetPassword consumes a reset token and sets a new password.
func (a *AuthController) ResetPassword(c *ctx.Context) {
	var input resetPasswordInput
	if !c.BindJSON(&input) {
		return
	}

	if err := a.auth.ResetPassword(c.Context(), c.Param("token"), input.Password); err != nil {
		c.FromError(err)
		return
	}

	c.SuccessMessage("Password updated", nil)
}
