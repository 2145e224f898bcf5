package handlers

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilterEmptyMeansNoFilter(t *testing.T) {
	filter := buildProductFilter(nil, nil)
	if len(filter) != 0 {
		t.Fatalf("expected empty filter to match everything, got %v", filter)
	}
}

func TestBuildProductFilterCategoriesOnly(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	filter := buildProductFilter([]primitive.ObjectID{a, b}, nil)

	want := bson.M{"category": bson.M{"$in": []primitive.ObjectID{a, b}}}
	if !reflect.DeepEqual(filter, want) {
		t.Fatalf("filter = %v, want %v", filter, want)
	}
}

func TestBuildProductFilterPriceOnly(t *testing.T) {
	filter := buildProductFilter(nil, []float64{20, 59})

	want := bson.M{"price": bson.M{"$gte": 20.0, "$lte": 59.0}}
	if !reflect.DeepEqual(filter, want) {
		t.Fatalf("filter = %v, want %v", filter, want)
	}
}

func TestBuildProductFilterCombined(t *testing.T) {
	a := primitive.NewObjectID()

	filter := buildProductFilter([]primitive.ObjectID{a}, []float64{0, 100})

	if _, ok := filter["category"]; !ok {
		t.Error("expected category clause")
	}
	if _, ok := filter["price"]; !ok {
		t.Error("expected price clause")
	}
}

func TestBuildProductFilterIgnoresPartialRange(t *testing.T) {
	filter := buildProductFilter(nil, []float64{20})
	if _, ok := filter["price"]; ok {
		t.Fatal("a single-bound range must not produce a price clause")
	}
}
