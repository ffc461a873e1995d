package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Names are stored lower-cased and are intended to
// be unique.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"category" json:"category"`
}
