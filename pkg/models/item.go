package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Item represents a catalog entry available for purchase
type Item struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name" validate:"required"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64       `json:"price" bson:"price" validate:"required"`
	Category    string        `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
}

type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
}

// ToItem assigns the generated id and creation timestamp
func (req *CreateItemRequest) ToItem() *Item {
	return &Item{
		ID:          bson.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}
}

// ItemFilter holds the optional listing filters. Zero values mean "not set";
// price bounds use pointers so 0 is a valid bound.
type ItemFilter struct {
	Category string
	Name     string
	MinPrice *float64
	MaxPrice *float64
}
