// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
	"github.com/Duvhier/jylclean-back/pkg/response"
)

// Require returns middleware that allows access only to users holding one
// of the given roles. Wire it after middleware.Auth so the user is in
// context.
func Require(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !role.OneOf(roles...) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Staff is shorthand for Require(RoleSuperUser, RoleAdmin).
func Staff() func(http.Handler) http.Handler {
	return Require(models.RoleSuperUser, models.RoleAdmin)
}

// Guest returns middleware that blocks authenticated users (useful for
// login/register when a session token is accidentally sent).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
