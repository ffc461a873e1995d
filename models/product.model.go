package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog item. CategoryID must reference an existing
// category at write time; references are not checked afterwards.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description" json:"description"`
	Availability bool               `bson:"availability" json:"availability"`
	CategoryID   primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Images       []string           `bson:"images" json:"images"`
}
