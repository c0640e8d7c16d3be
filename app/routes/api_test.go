package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Duvhier/jylclean-back/app/controllers"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/app/routes"
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/pkg/auth"
	"github.com/Duvhier/jylclean-back/pkg/router"
)

type noopNotifier struct{}

func (noopNotifier) NotifyPasswordReset(string, string) error { return nil }

type apiFixture struct {
	handler http.Handler
	users   *repositories.MemoryUserRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	users := repositories.NewMemoryUserRepository()
	products := repositories.NewMemoryProductRepository()
	carts := repositories.NewMemoryCartRepository()
	sales := repositories.NewMemorySaleRepository()

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		Auth:       controllers.NewAuthController(services.NewAuthService(users, noopNotifier{})),
		Users:      controllers.NewUserController(services.NewUserService(users)),
		Products:   controllers.NewProductController(services.NewProductService(products)),
		Carts:      controllers.NewCartController(services.NewCartService(carts, products)),
		Sales:      controllers.NewSaleController(services.NewSaleService(sales, products)),
		UserFinder: users,
	})

	return &apiFixture{handler: r.Handler(), users: users}
}

func (f *apiFixture) addUser(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, f.users.Create(context.Background(), user))

	token, err := auth.GenerateToken(user.ID.Hex(), role)
	require.NoError(t, err)
	return user, token
}

func (f *apiFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestUserAdministrationIsSuperUserOnly(t *testing.T) {
	f := newAPIFixture(t)
	victim, _ := f.addUser(t, "victim", models.RoleUser)
	_, adminToken := f.addUser(t, "admin", models.RoleAdmin)
	_, superToken := f.addUser(t, "root", models.RoleSuperUser)
	_, userToken := f.addUser(t, "plain", models.RoleUser)

	victimPath := "/api/users/" + victim.ID.Hex()

	// Admins and regular users are locked out of every user route.
	for _, token := range []string{adminToken, userToken} {
		assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/users", token, "").Code)
		assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, victimPath, token, "").Code)
		assert.Equal(t, http.StatusForbidden,
			f.do(http.MethodPut, victimPath, token, `{"role":"SuperUser"}`).Code)
		assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, victimPath, token, "").Code)
	}

	// A blocked promotion attempt must not touch the stored record.
	stored, err := f.users.FindByID(context.Background(), victim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)

	// SuperUser retains full access.
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/users", superToken, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, victimPath, superToken, "").Code)
	assert.Equal(t, http.StatusOK,
		f.do(http.MethodPut, victimPath, superToken, `{"username":"renamed"}`).Code)
}

func TestCatalogWritesAreStaffOnly(t *testing.T) {
	f := newAPIFixture(t)
	_, adminToken := f.addUser(t, "admin", models.RoleAdmin)
	_, userToken := f.addUser(t, "plain", models.RoleUser)

	body := `{"name":"Dish soap","price":4.25,"stock":10}`

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/api/products", userToken, body).Code)
	assert.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/products", adminToken, body).Code)

	// Reads stay public.
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/products", "", "").Code)
}
