package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Images hold URIs returned by the external image
// storage service.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Images      []string           `json:"image" bson:"image"`
	Category    string             `json:"category" bson:"category"`
	SubCategory string             `json:"subCategory" bson:"subCategory"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	Bestseller  bool               `json:"bestseller" bson:"bestseller"`
	Date        time.Time          `json:"date" bson:"date"`
}
