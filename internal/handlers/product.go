package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
	"storefront/pkg/logger"
)

const productsPerPage = 6

// photo binary never leaves list or single-product views; it streams only
// through the photo endpoint.
var withoutPhoto = bson.M{"photo": 0}

type productFiltersRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// CreateProduct validates the multipart form, derives the slug and stores
// the photo bytes inline on the new document.
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"success": false, "message": "multipart/form-data required"})
			return
		}

		form, err := parseProductForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if msg := validateProductForm(form, true); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        form.Name,
			Slug:        deriveSlug(form.Name),
			Description: form.Description,
			Price:       form.Price,
			Category:    form.Category,
			Quantity:    form.Quantity,
			Photo: models.Photo{
				Data:        form.PhotoData,
				ContentType: form.PhotoContentType,
			},
			Shipping:  form.Shipping,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondServerError(c, "Error in creating product", err)
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)

		logger.Get().Info().Str("slug", product.Slug).Msg("product created")
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Product Created Successfully",
			"products": product,
		})
	}
}

// UpdateProduct re-validates the full field set; the photo is optional and
// the stored one is retained when it is not supplied.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		form, err := parseProductForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if msg := validateProductForm(form, false); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		updateSet := bson.M{
			"name":        form.Name,
			"slug":        deriveSlug(form.Name),
			"description": form.Description,
			"price":       form.Price,
			"category":    form.Category,
			"quantity":    form.Quantity,
			"shipping":    form.Shipping,
			"updatedAt":   time.Now(),
		}
		if form.PhotoSet {
			updateSet["photo"] = models.Photo{
				Data:        form.PhotoData,
				ContentType: form.PhotoContentType,
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(withoutPhoto),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "product not found"})
			return
		}
		if err != nil {
			respondServerError(c, "Error in updating product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Product Updated Successfully",
			"products": updated,
		})
	}
}

// DeleteProduct removes a product by id. Orders keep their dangling
// references; nothing cascades.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondServerError(c, "Error while deleting product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Deleted successfully"})
	}
}

// GetProducts lists the newest products, photo excluded, capped at twelve.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetProjection(withoutPhoto).
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(12)

		cursor, err := db.Collection("products").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondServerError(c, "Error in getting products", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, "Error in getting products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"total":    len(products),
			"message":  "All Products",
			"products": products,
		})
	}
}

// GetProductBySlug reads one product, photo excluded, with its category
// populated.
func GetProductBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(
			ctx,
			bson.M{"slug": c.Param("slug")},
			options.FindOne().SetProjection(withoutPhoto),
		).Decode(&product)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "product not found"})
			return
		}
		if err != nil {
			respondServerError(c, "Error while getting single product", err)
			return
		}

		var category models.Category
		// dangling category references are accepted; population is best effort
		_ = db.Collection("categories").FindOne(ctx, bson.M{"_id": product.Category}).Decode(&category)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Single Product Fetched",
			"product":  product,
			"category": category,
		})
	}
}

// GetProductPhoto streams the stored photo bytes with their content type.
func GetProductPhoto(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(
			ctx,
			bson.M{"_id": id},
			options.FindOne().SetProjection(bson.M{"photo": 1}),
		).Decode(&product)

		if err != nil || len(product.Photo.Data) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "photo not found"})
			return
		}

		c.Data(http.StatusOK, product.Photo.ContentType, product.Photo.Data)
	}
}

// FilterProducts applies the optional category and price filters.
func FilterProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productFiltersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		categoryIDs := make([]primitive.ObjectID, 0, len(req.Checked))
		for _, raw := range req.Checked {
			id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid category id"})
				return
			}
			categoryIDs = append(categoryIDs, id)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(
			ctx,
			buildProductFilter(categoryIDs, req.Radio),
			options.Find().SetProjection(withoutPhoto),
		)
		if err != nil {
			respondServerError(c, "Error While Filtering Products", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, "Error While Filtering Products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// ProductCount returns the total product count for the pagination widget.
func ProductCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondServerError(c, "Error in product count", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
	}
}

// ProductList returns one page of products, newest first.
func ProductList(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := parsePageParam(c.Param("page"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetProjection(withoutPhoto).
			SetSkip((page - 1) * productsPerPage).
			SetLimit(productsPerPage).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondServerError(c, "error in per page ctrl", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, "error in per page ctrl", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// SearchProducts matches the keyword against name and description,
// case-insensitively.
func SearchProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := strings.TrimSpace(c.Param("keyword"))
		if keyword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "keyword required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": keyword, "$options": "i"}},
			{"description": bson.M{"$regex": keyword, "$options": "i"}},
		}}

		cursor, err := db.Collection("products").Find(ctx, filter, options.Find().SetProjection(withoutPhoto))
		if err != nil {
			respondServerError(c, "Error In Search Product API", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, "Error In Search Product API", err)
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// RelatedProducts returns up to three other products from the same category.
func RelatedProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
			return
		}
		cid, err := primitive.ObjectIDFromHex(c.Param("cid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid category id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{
			"category": cid,
			"_id":      bson.M{"$ne": pid},
		}

		cursor, err := db.Collection("products").Find(
			ctx,
			filter,
			options.Find().SetProjection(withoutPhoto).SetLimit(3),
		)
		if err != nil {
			respondServerError(c, "error while getting related product", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, "error while getting related product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// ProductsByCategory resolves a category by slug and lists its products.
func ProductsByCategory(db *mongo.Database) gin.HandlerFunc {
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
			respondServerError(c, "Error While Getting products", err)
			return
		}

		cursor, err := db.Collection("products").Find(
			ctx,
			bson.M{"category": category.ID},
			options.Find().SetProjection(withoutPhoto),
		)
		if err != nil {
			respondServerError(c, "Error While Getting products", err)
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondServerError(c, "Error While Getting products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"category": category,
			"products": products,
		})
	}
}
