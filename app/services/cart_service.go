package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/repositories"
)

// CartItemInput is the payload for adding or updating a cart line.
type CartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CartService maintains the single active cart per user.
type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart expanded with product details and totals.
// A user who has never touched their cart gets an empty one.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, cart)
}

// Add puts quantity units of a product into the cart. If the product is
// already in the cart the quantities merge into one line. The stock check
// runs against the merged quantity, not the increment.
func (s *CartService) Add(ctx context.Context, userID primitive.ObjectID, input CartItemInput) (*models.CartView, error) {
	productID, ok := parseObjectID(input.ProductID)
	if !ok {
		return nil, errs.NotFound("Product not found")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("Product not found")
		}
		return nil, errs.Internal(err)
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	wanted := input.Quantity
	if line := cart.Line(productID); line != nil {
		wanted += line.Quantity
	}
	if wanted > product.Stock {
		return nil, errs.InsufficientStockf("Not enough stock for %s", product.Name)
	}

	if line := cart.Line(productID); line != nil {
		line.Quantity = wanted
	} else {
		cart.Products = append(cart.Products, models.CartItem{Product: productID, Quantity: wanted})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errs.Internal(err)
	}
	return s.expand(ctx, cart)
}

// UpdateLine sets the quantity of an existing cart line.
func (s *CartService) UpdateLine(ctx context.Context, userID primitive.ObjectID, input CartItemInput) (*models.CartView, error) {
	productID, ok := parseObjectID(input.ProductID)
	if !ok {
		return nil, errs.NotFound("Product not in cart")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	line := cart.Line(productID)
	if line == nil {
		return nil, errs.NotFound("Product not in cart")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.NotFound("Product not found")
		}
		return nil, errs.Internal(err)
	}
	if input.Quantity > product.Stock {
		return nil, errs.InsufficientStockf("Not enough stock for %s", product.Name)
	}

	line.Quantity = input.Quantity
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errs.Internal(err)
	}
	return s.expand(ctx, cart)
}

// Remove drops a product from the cart. Removing a product that is not
// in the cart is a no-op, not an error.
func (s *CartService) Remove(ctx context.Context, userID primitive.ObjectID, productID string) (*models.CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if oid, ok := parseObjectID(productID); ok {
		cart.RemoveLine(oid)
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errs.Internal(err)
	}
	return s.expand(ctx, cart)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Products = nil
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errs.Internal(err)
	}
	return s.expand(ctx, cart)
}

func (s *CartService) load(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.Cart{User: userID, UpdatedAt: time.Now()}, nil
	}
	return nil, errs.Internal(err)
}

// expand resolves product references into a view with per-line subtotals.
// Lines whose product has since been deleted are skipped, not errored.
func (s *CartService) expand(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	view := &models.CartView{
		ID:        cart.ID,
		User:      cart.User,
		Products:  make([]models.CartViewItem, 0, len(cart.Products)),
		UpdatedAt: cart.UpdatedAt,
	}

	for _, line := range cart.Products {
		product, err := s.products.FindByID(ctx, line.Product)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, errs.Internal(err)
		}
		subtotal := product.Price * float64(line.Quantity)
		view.Products = append(view.Products, models.CartViewItem{
			Product:  *product,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}

	return view, nil
}
