package models

import "time"

// Product belongs to exactly one store. Parent scoping is the indexed
// storeId field; the document store has no nested collections.
type Product struct {
	ID        string    `json:"id" bson:"_id"`
	StoreID   string    `json:"store_id" bson:"storeId"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Stock     int       `json:"stock" bson:"stock"`
	ImageURL  string    `json:"image_url,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}
