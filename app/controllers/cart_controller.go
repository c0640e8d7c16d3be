package controllers

import (
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// Show returns the caller's cart with product details and totals.
func (ct *CartController) Show(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	view, err := ct.carts.Get(c.Context(), userID)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(view)
}

// Add puts a product into the cart, merging with an existing line.
func (ct *CartController) Add(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	var input services.CartItemInput
	if !c.BindJSON(&input) {
		return
	}

	view, err := ct.carts.Add(c.Context(), userID, input)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(view)
}

// UpdateLine sets the quantity of an existing cart line. The product
// comes from the path, the quantity from the body.
func (ct *CartController) UpdateLine(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	var input struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if !c.BindJSON(&input) {
		return
	}

	view, err := ct.carts.UpdateLine(c.Context(), userID, services.CartItemInput{
		ProductID: c.Param("productId"),
		Quantity:  input.Quantity,
	})
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(view)
}

// Remove drops one product from the cart.
func (ct *CartController) Remove(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	view, err := ct.carts.Remove(c.Context(), userID, c.Param("productId"))
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(view)
}

// Clear empties the cart.
func (ct *CartController) Clear(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	view, err := ct.carts.Clear(c.Context(), userID)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(view)
}
