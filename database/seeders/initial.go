package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/config"
	"github.com/Duvhier/jylclean-back/pkg/auth"
)

func init() {
	Register("superuser", SeedSuperUser)
	Register("products", SeedProducts)
}

// SeedSuperUser creates the initial administrator account if no
// SuperUser exists yet. Credentials come from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD, with development defaults.
func SeedSuperUser(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	n, err := users.CountDocuments(ctx, bson.M{"role": models.RoleSuperUser})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("SEED_ADMIN_PASSWORD", "ChangeMe1!"))
	if err != nil {
		return err
	}

	_, err = users.InsertOne(ctx, models.User{
		ID:        primitive.NewObjectID(),
		Username:  "admin",
		Email:     config.Get("SEED_ADMIN_EMAIL", "admin@jylclean.com"),
		Password:  hash,
		Role:      models.RoleSuperUser,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

// SeedProducts loads a small starter catalogue into an empty products
// collection. It never touches a collection that already has data.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	products := db.Collection("products")

	n, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	catalogue := []interface{}{
		models.Product{
			ID:          primitive.NewObjectID(),
			Name:        "Multi-surface cleaner 1L",
			Description: "Concentrated multi-surface cleaner, lavender scent.",
			Price:       8.50,
			Stock:       120,
			Category:    "cleaners",
			UpdatedAt:   now,
		},
		models.Product{
			ID:          primitive.NewObjectID(),
			Name:        "Dish soap 750ml",
			Description: "Grease-cutting dish soap, lemon scent.",
			Price:       4.25,
			Stock:       200,
			Category:    "kitchen",
			UpdatedAt:   now,
		},
		models.Product{
			ID:          primitive.NewObjectID(),
			Name:        "Glass cleaner spray 500ml",
			Description: "Streak-free glass and mirror cleaner.",
			Price:       5.90,
			Stock:       80,
			Category:    "cleaners",
			UpdatedAt:   now,
		},
		models.Product{
			ID:          primitive.NewObjectID(),
			Name:        "Microfibre cloth pack (x5)",
			Description: "Reusable microfibre cloths for dusting and polishing.",
			Price:       6.75,
			Stock:       150,
			Category:    "accessories",
			UpdatedAt:   now,
		},
	}

	_, err = products.InsertMany(ctx, catalogue)
	return err
}
