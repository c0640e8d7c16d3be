package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one (product, quantity) line in a cart.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Cart is the per-user working set. There is at most one cart per user
// (unique index on user) and at most one line per distinct product.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Products  []CartItem         `bson:"products" json:"products"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Line returns a pointer to the line holding productID, or nil.
func (c *Cart) Line(productID primitive.ObjectID) *CartItem {
	for i := range c.Products {
		if c.Products[i].Product == productID {
			return &c.Products[i]
		}
	}
	return nil
}

// RemoveLine drops the line holding productID if present.
func (c *Cart) RemoveLine(productID primitive.ObjectID) {
	items := c.Products[:0]
	for _, item := range c.Products {
		if item.Product != productID {
			items = append(items, item)
		}
	}
	c.Products = items
}

// CartViewItem is a cart line with the product expanded and the line
// subtotal resolved from the live product price. Carts never snapshot
// prices; that happens only at sale time.
type CartViewItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartView is the read model returned to clients.
type CartView struct {
	ID        primitive.ObjectID `json:"id"`
	User      primitive.ObjectID `json:"user"`
	Products  []CartViewItem     `json:"products"`
	Total     float64            `json:"total"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
