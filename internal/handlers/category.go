package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// deriveSlug is the single slug transform used for categories and products:
// deterministic, lowercase, hyphenated.
func deriveSlug(name string) string {
	return slug.Make(name)
}

// CreateCategory inserts a category unless one with the exact name exists,
// in which case the existing fact is reported as a success, not an error.
func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			// 401 for a missing name is inherited wire behavior
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Name is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Category
		err := db.Collection("categories").FindOne(ctx, bson.M{"name": name}).Decode(&existing)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category Already Exists"})
			return
		}
		if err != mongo.ErrNoDocuments {
			respondServerError(c, "Error in Category", err)
			return
		}

		category := models.Category{
			Name: name,
			Slug: deriveSlug(name),
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondServerError(c, "Error in Category", err)
			return
		}
		category.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "new category created",
			"category": category,
		})
	}
}

// UpdateCategory renames a category and re-derives its slug. The store's
// update-by-id is authoritative; a missing id surfaces as not found.
func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Category
		err = db.Collection("categories").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"name": name, "slug": deriveSlug(name)}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "category not found"})
			return
		}
		if err != nil {
			respondServerError(c, "Error while updating category", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Category Updated Successfully",
			"category": updated,
		})
	}
}

// GetCategories lists every category.
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("categories").Find(ctx, bson.M{})
		if err != nil {
			respondServerError(c, "Error while getting all categories", err)
			return
		}
		defer cursor.Close(ctx)

		var categories []models.Category
		if err := cursor.All(ctx, &categories); err != nil {
			respondServerError(c, "Error while getting all categories", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "All Categories List",
			"category": categories,
		})
	}
}

// GetCategoryBySlug reads a single category by its slug.
func GetCategoryBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		err := db.Collection("categories").FindOne(ctx, bson.M{"slug": c.Param("slug")}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "category not found"})
			return
		}
		if err != nil {
			respondServerError(c, "Error While getting Single Category", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Get Single Category Successfully",
			"category": category,
		})
	}
}

// DeleteCategory removes a category by id. Products referencing it keep
// their dangling reference; nothing cascades.
func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondServerError(c, "error while deleting category", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category Deleted Successfully"})
	}
}
