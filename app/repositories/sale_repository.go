package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Duvhier/jylclean-back/app/models"
)

// SaleRepository handles database operations for Sale.
type SaleRepository struct {
	col *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{col: db.Collection("sales")}
}

// Create persists a new sale record.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	res, err := r.col.InsertOne(ctx, sale)
	if err != nil {
		return fmt.Errorf("sales: create: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		sale.ID = id
	}
	return nil
}

// FindByID looks up a sale by primary key.
func (r *SaleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error) {
	var sale models.Sale
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sales: find: %w", err)
	}
	return &sale, nil
}

// FindByUser returns all sales made by the given user, newest first.
func (r *SaleRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Sale, error) {
	return r.find(ctx, bson.M{"user": userID})
}

// All returns every recorded sale, newest first.
func (r *SaleRepository) All(ctx context.Context) ([]models.Sale, error) {
	return r.find(ctx, bson.M{})
}

// UpdateStatus replaces the sale's status and returns the updated
// record.
func (r *SaleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.SaleStatus) (*models.Sale, error) {
	var sale models.Sale
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sale)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sales: update status: %w", err)
	}
	return &sale, nil
}

func (r *SaleRepository) find(ctx context.Context, filter bson.M) ([]models.Sale, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("sales: find: %w", err)
	}

	var sales []models.Sale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("sales: decode: %w", err)
	}
	return sales, nil
}
