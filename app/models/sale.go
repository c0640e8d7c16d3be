package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleStatus is the closed set of sale lifecycle states.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

// Valid reports whether s is one of the defined statuses.
func (s SaleStatus) Valid() bool {
	switch s {
	case SalePending, SaleCompleted, SaleCancelled:
		return true
	}
	return false
}

// SaleItem is one sold line. Price is the unit price captured at sale
// time; later catalogue price changes never touch it.
type SaleItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// Sale is an immutable transaction record; only Status is ever mutated
// after creation, and only by staff.
type Sale struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Products  []SaleItem         `bson:"products" json:"products"`
	Total     float64            `bson:"total" json:"total"`
	Status    SaleStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
