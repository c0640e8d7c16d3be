package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/pkg/auth"
	"github.com/Duvhier/jylclean-back/pkg/response"
)

// UserFinder resolves a token subject to a live account.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// userKey is the unexported context key holding the authenticated *models.User.
type userKey struct{}

// Auth returns middleware that requires a valid Bearer token and re-resolves
// the subject against the users collection on every request. A token whose
// account has been deleted (or whose role changed) carries the account's
// current state, not the claims snapshot.
func Auth(users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, "Missing token")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "Missing token")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			uid, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.FindByID(r.Context(), uid)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					response.Error(w, http.StatusUnauthorized, "Account no longer exists")
					return
				}
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromCtx returns the authenticated user attached by Auth.
func UserFromCtx(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey{}).(*models.User)
	return user, ok
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (primitive.ObjectID, bool) {
	if user, ok := UserFromCtx(r); ok {
		return user.ID, true
	}
	return primitive.NilObjectID, false
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (models.Role, bool) {
	if user, ok := UserFromCtx(r); ok {
		return user.Role, true
	}
	return "", false
}
