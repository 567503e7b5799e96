package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account with an embedded cart
type User struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string        `json:"username" bson:"username" validate:"required"`
	Password  string        `json:"-" bson:"password"` // bcrypt hash, never exposed
	Cart      []CartEntry   `json:"cart" bson:"cart"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}

// CartEntry is one (item reference, quantity) pair on a user document.
// The cart holds at most one entry per distinct item id.
type CartEntry struct {
	ItemID   bson.ObjectID `json:"itemId" bson:"item_id"`
	Quantity int           `json:"quantity" bson:"quantity"`
}

// ResolvedCartEntry is a cart entry with the item reference expanded
// into the full item record, the shape returned by the cart endpoints.
type ResolvedCartEntry struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddToCartRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type RemoveFromCartRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// SetTimestamps sets created_at on first call
func (u *User) SetTimestamps() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
}
