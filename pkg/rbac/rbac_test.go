package rbac_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/pkg/auth"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
	"github.com/Duvhier/jylclean-back/pkg/rbac"
)

// request runs an authenticated request for a user with the given role
// through middleware.Auth and the gate under test.
func request(t *testing.T, gate func(http.Handler) http.Handler, role models.Role) int {
	t.Helper()

	users := repositories.NewMemoryUserRepository()
	user := &models.User{Username: "u", Email: "u@example.com", Role: role}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware.Auth(users)(gate(ok)).ServeHTTP(rec, req)
	return rec.Code
}

func TestRoleGateMatrix(t *testing.T) {
	tests := []struct {
		name string
		gate func(http.Handler) http.Handler
		role models.Role
		want int
	}{
		{"staff allows superuser", rbac.Staff(), models.RoleSuperUser, http.StatusOK},
		{"staff allows admin", rbac.Staff(), models.RoleAdmin, http.StatusOK},
		{"staff rejects user", rbac.Staff(), models.RoleUser, http.StatusForbidden},
		{"superuser-only allows superuser", rbac.Require(models.RoleSuperUser), models.RoleSuperUser, http.StatusOK},
		{"superuser-only rejects admin", rbac.Require(models.RoleSuperUser), models.RoleAdmin, http.StatusForbidden},
		{"superuser-only rejects user", rbac.Require(models.RoleSuperUser), models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := request(t, tt.gate, tt.role); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGateWithoutUser(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	rbac.Staff()(ok).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestAuthRejectsMissingAndGarbageTokens(t *testing.T) {
	users := repositories.NewMemoryUserRepository()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, header := range []string{"", "Bearer garbage", "NotBearer abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		middleware.Auth(users)(ok).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthRejectsDeletedAccount(t *testing.T) {
	users := repositories.NewMemoryUserRepository()
	user := &models.User{Username: "gone", Email: "gone@example.com", Role: models.RoleUser}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := users.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.Auth(users)(ok).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d; a valid token must die with its account", rec.Code, http.StatusUnauthorized)
	}
}
