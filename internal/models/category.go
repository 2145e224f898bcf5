package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category groups products. The slug is a deterministic, URL-safe transform
// of the name, re-derived on every rename.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
	Slug string             `bson:"slug" json:"slug"`
}
