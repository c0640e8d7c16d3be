package controllers

import (
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
)

type SaleController struct {
	sales *services.SaleService
}

func NewSaleController(sales *services.SaleService) *SaleController {
	return &SaleController{sales: sales}
}

// Create registers a sale for the caller and reserves stock.
func (s *SaleController) Create(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	var input services.SaleInput
	if !c.BindJSON(&input) {
		return
	}

	sale, err := s.sales.Create(c.Context(), userID, input)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Created(sale)
}

// Mine lists the caller's own sales.
func (s *SaleController) Mine(c *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	sales, err := s.sales.ListMine(c.Context(), userID)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(sales)
}

// Index lists every sale. Staff only; the route group enforces it.
func (s *SaleController) Index(c *ctx.Context) {
	sales, err := s.sales.ListAll(c.Context())
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(sales)
}

// Show returns one sale; regular users can only read their own.
func (s *SaleController) Show(c *ctx.Context) {
	user, ok := middleware.UserFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return
	}

	sale, err := s.sales.Get(c.Context(), c.Param("id"), user.ID, user.Role)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(sale)
}

// UpdateStatus moves a sale through its lifecycle.
func (s *SaleController) UpdateStatus(c *ctx.Context) {
	var input services.SaleStatusInput
	if !c.BindJSON(&input) {
		return
	}

	sale, err := s.sales.UpdateStatus(c.Context(), c.Param("id"), input)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(sale)
}
