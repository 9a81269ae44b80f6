package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubCategory is a flat, uniquely named catalog grouping.
type SubCategory struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
	Date time.Time          `json:"date" bson:"date"`
}
