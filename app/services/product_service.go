package services

import (
	"context"
	"errors"
	"time"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/pkg/cache"
)

// ProductInput is the payload for creating a catalogue entry.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// ProductService implements catalogue reads and staff-gated writes.
// The full listing is cached in Redis; every write invalidates it.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns all products. The listing is deliberately unpaginated.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(productListCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}

	_ = cache.Set(productListCacheKey, products, 5*time.Minute)
	return products, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, errs.NotFound("Product not found")
	}

	product, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("Product not found")
		}
		return nil, errs.Internal(err)
	}
	return product, nil
}

// Create adds a catalogue entry.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       input.Image,
		Category:    input.Category,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, errs.Internal(err)
	}

	_ = cache.Del(productListCacheKey)
	return product, nil
}

// Update applies the present fields of patch. A present zero value
// (price 0, empty description) is written, not skipped.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, errs.NotFound("Product not found")
	}

	product, err := s.products.Update(ctx, oid, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("Product not found")
		}
		return nil, errs.Internal(err)
	}

	_ = cache.Del(productListCacheKey)
	return product, nil
}

// Delete removes a catalogue entry.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return errs.NotFound("Product not found")
	}

	if err := s.products.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.NotFound("Product not found")
		}
		return errs.Internal(err)
	}

	_ = cache.Del(productListCacheKey)
	return nil
}

// SetImage records the public URL of an uploaded product image.
func (s *ProductService) SetImage(ctx context.Context, id, url string) (*models.Product, error) {
	return s.Update(ctx, id, models.ProductPatch{Image: &url})
}
