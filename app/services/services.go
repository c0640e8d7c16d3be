// Package services holds the business logic. Each service receives its
// stores through the constructor; the Mongo repositories satisfy these
// interfaces in production and the in-memory repositories satisfy them
// in tests.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/models"
)

// UserStore is the persistence surface the auth and user services need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]models.User, error)
}

// ProductStore is the catalogue persistence surface.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

// CartStore is the cart persistence surface.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// SaleStore is the sale persistence surface.
type SaleStore interface {
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Sale, error)
	All(ctx context.Context) ([]models.Sale, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.SaleStatus) (*models.Sale, error)
}

// ResetNotifier delivers a password-reset token to a user, typically by
// queueing a mail job. Delivery is best-effort.
type ResetNotifier interface {
	NotifyPasswordReset(email, token string) error
}

// productListCacheKey caches the full catalogue listing; every
// stock/price mutation invalidates it.
const productListCacheKey = "products:all"

func parseObjectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	return id, err == nil
}
