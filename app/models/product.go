package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry. Stock is the number of sellable units;
// it is only ever mutated through the repository's conditional
// decrement, so it can never observe a negative value.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Image       string             `bson:"image,omitempty" json:"image"`
	Category    string             `bson:"category,omitempty" json:"category"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductPatch is a partial product update. A nil pointer leaves the
// field untouched; a non-nil pointer is applied even for zero values,
// so price can legitimately be set to 0 and description to "".
type ProductPatch struct {
	Name        *string  `json:"name" validate:"nullable,min=1,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"nullable,gte=0"`
	Stock       *int     `json:"stock" validate:"nullable,gte=0"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

// Empty reports whether the patch carries no fields at all.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Stock == nil && p.Image == nil && p.Category == nil
}
