package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/pkg/cache"
	"github.com/Duvhier/jylclean-back/pkg/logger"
	"github.com/Duvhier/jylclean-back/pkg/metrics"
)

// SaleItemInput is one line of a sale request.
type SaleItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// SaleInput is the payload for registering a sale.
type SaleInput struct {
	Products []SaleItemInput `json:"products" validate:"required,min=1"`
}

// SaleStatusInput is the payload for moving a sale through its lifecycle.
type SaleStatusInput struct {
	Status models.SaleStatus `json:"status" validate:"required"`
}

// SaleService registers sales against live stock and serves sale history.
// A sale either reserves stock for every line or leaves stock untouched.
type SaleService struct {
	sales    SaleStore
	products ProductStore
}

func NewSaleService(sales SaleStore, products ProductStore) *SaleService {
	return &SaleService{sales: sales, products: products}
}

// Create registers a sale for the user. Each line is checked against the
// current catalogue and its stock decremented atomically; the unit price is
// snapshotted at this moment so later catalogue edits do not rewrite
// history. If any line fails, decrements already applied are reverted and
// no sale is recorded.
func (s *SaleService) Create(ctx context.Context, userID primitive.ObjectID, input SaleInput) (*models.Sale, error) {
	sale := &models.Sale{
		User:      userID,
		Products:  make([]models.SaleItem, 0, len(input.Products)),
		Status:    models.SalePending,
		CreatedAt: time.Now(),
	}

	applied := make([]models.SaleItem, 0, len(input.Products))
	rollback := func() {
		for _, item := range applied {
			if err := s.products.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
				logger.Error("sale rollback failed",
					"product", item.Product.Hex(),
					"quantity", item.Quantity,
					"error", err)
			}
		}
	}

	for _, line := range input.Products {
		productID, ok := parseObjectID(line.ProductID)
		if !ok {
			rollback()
			return nil, errs.NotFoundf("Product %s not found", line.ProductID)
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			rollback()
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, errs.NotFoundf("Product %s not found", line.ProductID)
			}
			return nil, errs.Internal(err)
		}

		if err := s.products.DecrementStock(ctx, productID, line.Quantity); err != nil {
			rollback()
			switch {
			case errors.Is(err, repositories.ErrInsufficientStock):
				return nil, errs.InsufficientStockf("Not enough stock for %s", product.Name)
			case errors.Is(err, repositories.ErrNotFound):
				return nil, errs.NotFoundf("Product %s not found", line.ProductID)
			default:
				return nil, errs.Internal(err)
			}
		}

		item := models.SaleItem{Product: productID, Quantity: line.Quantity, Price: product.Price}
		applied = append(applied, item)
		sale.Products = append(sale.Products, item)
		sale.Total += product.Price * float64(line.Quantity)
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		rollback()
		return nil, errs.Internal(err)
	}

	metrics.SalesTotal.Inc()
	metrics.SalesRevenue.Add(sale.Total)
	_ = cache.Del(productListCacheKey)

	return sale, nil
}

// Get returns one sale. Regular users can only read their own sales.
func (s *SaleService) Get(ctx context.Context, id string, requester primitive.ObjectID, role models.Role) (*models.Sale, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, errs.NotFound("Sale not found")
	}

	sale, err := s.sales.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("Sale not found")
		}
		return nil, errs.Internal(err)
	}

	if sale.User != requester && !role.IsStaff() {
		return nil, errs.Permission("You cannot view this sale")
	}
	return sale, nil
}

// ListMine returns the requesting user's sales, newest first.
func (s *SaleService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.Sale, error) {
	sales, err := s.sales.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return sales, nil
}

// ListAll returns every sale, newest first. Staff only; the route enforces it.
func (s *SaleService) ListAll(ctx context.Context) ([]models.Sale, error) {
	sales, err := s.sales.All(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return sales, nil
}

// UpdateStatus moves a sale to a new lifecycle status.
func (s *SaleService) UpdateStatus(ctx context.Context, id string, input SaleStatusInput) (*models.Sale, error) {
	if !input.Status.Valid() {
		return nil, errs.Validation("Invalid sale status")
	}

	oid, ok := parseObjectID(id)
	if !ok {
		return nil, errs.NotFound("Sale not found")
	}

	sale, err := s.sales.UpdateStatus(ctx, oid, input.Status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("Sale not found")
		}
		return nil, errs.Internal(err)
	}
	return sale, nil
}
