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

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection("products")}
}

// All returns the whole catalogue.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("products: all: %w", err)
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("products: find: %w", err)
	}
	return &product, nil
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("products: create: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// Update applies the non-nil fields of patch and returns the updated
// document. Present-but-zero values are written; omitted fields are
// left alone.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}

	var product models.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("products: update: %w", err)
	}
	return &product, nil
}

// Delete removes the product document.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock reduces stock by qty in a single conditional update:
// the filter requires stock >= qty, so two concurrent sales can never
// drive stock negative. Returns ErrInsufficientStock when the
// condition fails for an existing product.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("products: decrement stock: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Distinguish a missing product from one without enough units.
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrInsufficientStock
}

// IncrementStock adds qty back to stock. Used to compensate partial
// sale failures.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("products: increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
