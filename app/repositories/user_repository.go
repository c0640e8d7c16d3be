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

// UserRepository handles database operations for User.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Create persists a new user record. The unique indexes on username
// and email surface as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("users: create: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail looks up a user by their (lowercased) email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// ExistsByUsernameOrEmail reports whether any user already holds the
// given username or email.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}},
	})
	if err != nil {
		return false, fmt.Errorf("users: exists: %w", err)
	}
	return n > 0, nil
}

// FindByResetToken looks up a user holding the given reset-token digest
// with an expiry still in the future.
func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	return r.findOne(ctx, bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": bson.M{"$gt": time.Now()},
	})
}

// Update replaces the stored document for user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("users: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeExpiredResetTokens unsets reset-token fields whose expiry has
// passed and returns how many documents were touched.
func (r *UserRepository) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"resetPasswordExpires": bson.M{"$lt": time.Now()}},
		bson.M{"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("users: purge reset tokens: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete removes the user document.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("users: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every user record.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("users: all: %w", err)
	}

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("users: find: %w", err)
	}
	return &user, nil
}
