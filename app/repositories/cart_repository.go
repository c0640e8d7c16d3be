package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Duvhier/jylclean-back/app/models"
)

// CartRepository handles database operations for Cart. The unique
// index on the user field enforces at most one cart per user.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection("carts")}
}

// FindByUser returns the user's cart, or ErrNotFound.
func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("carts: find: %w", err)
	}
	return &cart, nil
}

// Save upserts the cart keyed by its owning user.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	if cart.Products == nil {
		cart.Products = []models.CartItem{}
	}

	res, err := r.col.ReplaceOne(ctx,
		bson.M{"user": cart.User},
		cart,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("carts: save: %w", err)
	}

	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return nil
}
