package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/pkg/auth"
	"github.com/Duvhier/jylclean-back/pkg/crypt"
	"github.com/Duvhier/jylclean-back/pkg/logger"
	"github.com/Duvhier/jylclean-back/pkg/metrics"
)

// resetTokenTTL bounds how long a password-reset token stays usable.
const resetTokenTTL = time.Hour

// invalidCredentials is the single message used for both unknown email
// and wrong password, so login never discloses account existence.
const invalidCredentials = "Invalid credentials"

// AuthService implements registration, login and the password-reset
// flow.
type AuthService struct {
	users    UserStore
	notifier ResetNotifier
}

func NewAuthService(users UserStore, notifier ResetNotifier) *AuthService {
	return &AuthService{users: users, notifier: notifier}
}

// Register creates a new account and returns it with an issued token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if !auth.ValidatePassword(password) {
		return nil, "", errs.Validation(auth.PasswordPolicyMessage)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	if exists {
		return nil, "", errs.Conflict("User already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", errs.Internal(err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", errs.Conflict("User already exists")
		}
		return nil, "", errs.Internal(err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", errs.Internal(err)
	}

	metrics.UsersRegistered.Inc()
	return user, token, nil
}

// Login authenticates by email and password and returns the user with
// an issued token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", errs.Authentication(invalidCredentials)
		}
		return nil, "", errs.Internal(err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", errs.Authentication(invalidCredentials)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	return user, token, nil
}

// RequestPasswordReset issues a single-use reset token, stores its
// digest with a one-hour expiry, and hands the plaintext token to the
// notifier for delivery. Only the digest ever touches the database.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.NotFound("No account found for that email")
		}
		return errs.Internal(err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return errs.Internal(err)
	}
	token := hex.EncodeToString(raw)

	user.ResetToken = crypt.Hash(token)
	user.ResetExpires = time.Now().Add(resetTokenTTL)
	if err := s.users.Update(ctx, user); err != nil {
		return errs.Internal(err)
	}

	if err := s.notifier.NotifyPasswordReset(user.Email, token); err != nil {
		logger.Error("auth: reset mail dispatch failed", "email", user.Email, "error", err)
		return errs.Internal(err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
// The token is invalidated on success, so a second use fails.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !auth.ValidatePassword(newPassword) {
		return errs.Validation(auth.PasswordPolicyMessage)
	}

	user, err := s.users.FindByResetToken(ctx, crypt.Hash(token))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Validation("Invalid or expired reset token")
		}
		return errs.Internal(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return errs.Internal(err)
	}

	// Update persists with omitempty bson tags, so the cleared token
	// fields are unset in the same write.
	user.Password = hash
	user.ResetToken = ""
	user.ResetExpires = time.Time{}
	if err := s.users.Update(ctx, user); err != nil {
		return errs.Internal(err)
	}
	return nil
}

// CurrentUser resolves a token-embedded user id back to the stored
// record. A valid token whose account has since been deleted is
// rejected here.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, ok := parseObjectID(userID)
	if !ok {
		return nil, errs.Authentication("Invalid token")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.Authentication("Account no longer exists")
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}
