package handlers

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildProductFilter combines the two optional storefront filters. An empty
// category list means "no category filter", not "match nothing"; a price
// range applies only when both bounds are present.
func buildProductFilter(categoryIDs []primitive.ObjectID, priceRange []float64) bson.M {
	filter := bson.M{}
	if len(categoryIDs) > 0 {
		filter["category"] = bson.M{"$in": categoryIDs}
	}
	if len(priceRange) == 2 {
		filter["price"] = bson.M{"$gte": priceRange[0], "$lte": priceRange[1]}
	}
	return filter
}
