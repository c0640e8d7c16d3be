// Package routes mounts the public API onto the router.
package routes

import (
	"github.com/Duvhier/jylclean-back/app/controllers"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
	"github.com/Duvhier/jylclean-back/pkg/rbac"
	"github.com/Duvhier/jylclean-back/pkg/router"
)

// Deps carries everything the route table needs.
type Deps struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Products *controllers.ProductController
	Carts    *controllers.CartController
	Sales    *controllers.SaleController

	// UserFinder backs the Auth middleware's per-request account lookup.
	UserFinder middleware.UserFinder
}

// RegisterAPI mounts all /api routes.
func RegisterAPI(r *router.Router, d Deps) {
	authed := middleware.Auth(d.UserFinder)
	staff := rbac.Staff()
	super := rbac.Require(models.RoleSuperUser)

	api := r.Group("/api")

	// Authentication.
	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", ctx.Wrap(d.Auth.Register))
	auth.Post("/login", "auth.login", ctx.Wrap(d.Auth.Login))
	auth.Post("/forgot-password", "auth.forgot", ctx.Wrap(d.Auth.ForgotPassword))
	auth.Post("/reset-password/{token}", "auth.reset", ctx.Wrap(d.Auth.ResetPassword))
	auth.Get("/me", "auth.me", ctx.Wrap(d.Auth.Me), authed)

	// Catalogue reads are public; writes are staff only.
	products := api.Group("/products")
	products.Get("", "products.index", ctx.Wrap(d.Products.Index))
	products.Get("/{id}", "products.show", ctx.Wrap(d.Products.Show))
	products.Post("", "products.create", ctx.Wrap(d.Products.Create), authed, staff)
	products.Put("/{id}", "products.update", ctx.Wrap(d.Products.Update), authed, staff)
	products.Delete("/{id}", "products.delete", ctx.Wrap(d.Products.Delete), authed, staff)
	products.Post("/{id}/image", "products.image", ctx.Wrap(d.Products.UploadImage), authed, staff)

	// Account administration. SuperUser only: a user patch can change
	// roles, so even Admins stay out.
	users := api.Group("/users", authed, super)
	users.Get("", "users.index", ctx.Wrap(d.Users.Index))
	users.Get("/{id}", "users.show", ctx.Wrap(d.Users.Show))
	users.Put("/{id}", "users.update", ctx.Wrap(d.Users.Update))
	users.Delete("/{id}", "users.delete", ctx.Wrap(d.Users.Delete))

	// One active cart per authenticated user.
	cart := api.Group("/cart", authed)
	cart.Get("", "cart.show", ctx.Wrap(d.Carts.Show))
	cart.Post("/add", "cart.add", ctx.Wrap(d.Carts.Add))
	cart.Put("/update/{productId}", "cart.update", ctx.Wrap(d.Carts.UpdateLine))
	cart.Delete("/remove/{productId}", "cart.remove", ctx.Wrap(d.Carts.Remove))
	cart.Delete("/clear", "cart.clear", ctx.Wrap(d.Carts.Clear))

	// Sales.
	sales := api.Group("/sales", authed)
	sales.Post("", "sales.create", ctx.Wrap(d.Sales.Create))
	sales.Get("/my-sales", "sales.mine", ctx.Wrap(d.Sales.Mine))
	sales.Get("", "sales.index", ctx.Wrap(d.Sales.Index), staff)
	sales.Put("/{id}/status", "sales.status", ctx.Wrap(d.Sales.UpdateStatus), staff)
	sales.Get("/{id}", "sales.show", ctx.Wrap(d.Sales.Show))
}
