package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/payment"
	"storefront/pkg/logger"
)

type orderStatusRequest struct {
	Status string `json:"status"`
}

type cartItem struct {
	ID    string  `json:"_id"`
	Price float64 `json:"price"`
}

type checkoutRequest struct {
	Nonce string     `json:"nonce" binding:"required"`
	Cart  []cartItem `json:"cart" binding:"required"`
}

// orderBuyer is the populated buyer view: id and name only.
type orderBuyer struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

type orderView struct {
	ID        primitive.ObjectID   `json:"_id"`
	Products  []models.Product     `json:"products"`
	Payment   models.PaymentResult `json:"payment"`
	Buyer     orderBuyer           `json:"buyer"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// GetOrders lists the caller's own orders with products and buyer name
// populated.
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"buyer": userID})
		if err != nil {
			respondServerError(c, "Error While Getting Orders", err)
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			respondServerError(c, "Error While Getting Orders", err)
			return
		}

		views, err := populateOrders(ctx, db, orders)
		if err != nil {
			respondServerError(c, "Error While Getting Orders", err)
			return
		}

		c.JSON(http.StatusOK, views)
	}
}

// GetAllOrders lists every order, newest first. Admin only.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			bson.M{},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondServerError(c, "Error While Getting Orders", err)
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			respondServerError(c, "Error While Getting Orders", err)
			return
		}

		views, err := populateOrders(ctx, db, orders)
		if err != nil {
			respondServerError(c, "Error While Getting Orders", err)
			return
		}

		c.JSON(http.StatusOK, views)
	}
}

// UpdateOrderStatus sets the status to any of the five enumerated values,
// with no transition table. An unknown order id yields a null record rather
// than an error: "not found" and "nothing to update" are the same outcome.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		if !models.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"success": true, "order": nil})
			return
		}
		if err != nil {
			respondServerError(c, "Error While Updating Order", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": updated})
	}
}

// BraintreeToken returns the gateway client token the payment widget needs.
func BraintreeToken(gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /braintree/token"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		token, err := gw.ClientToken(ctx)
		if err != nil {
			respondServerError(c, "Error in token generation", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientToken": token})
	}
}

// BraintreeCheckout captures the cart total against the supplied nonce and
// persists the gateway result onto a new order. Declines still create the
// order, carrying payment.success=false; inventory is not decremented.
func BraintreeCheckout(db *mongo.Database, gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /braintree/payment"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Nonce == "" || len(req.Cart) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "nonce and cart are required"})
			return
		}

		// order and duplicates in the cart are preserved: one entry per unit
		productIDs := make([]primitive.ObjectID, 0, len(req.Cart))
		total := 0.0
		for _, item := range req.Cart {
			id, err := primitive.ObjectIDFromHex(item.ID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
				return
			}
			productIDs = append(productIDs, id)
			total += item.Price
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		result, err := gw.Capture(ctx, req.Nonce, total)
		if err != nil {
			metrics.PaymentFailuresTotal.Inc()
			respondServerError(c, "Error in payment", err)
			return
		}
		if !result.Success {
			metrics.PaymentFailuresTotal.Inc()
		}

		now := time.Now()
		order := models.Order{
			Products: productIDs,
			Payment: models.PaymentResult{
				Success:       result.Success,
				TransactionID: result.TransactionID,
				Message:       result.Message,
			},
			Buyer:     userID,
			Status:    models.StatusNotProcess,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if _, err := db.Collection("orders").InsertOne(ctx, order); err != nil {
			respondServerError(c, "Error in payment", err)
			return
		}

		metrics.OrdersPlacedTotal.Inc()
		logger.Get().Info().
			Str("buyer", userID.Hex()).
			Bool("paymentSuccess", result.Success).
			Float64("amount", total).
			Msg("order placed")

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// populateOrders swaps product and buyer references for their documents in
// two batched lookups. Photo binary stays out of the populated view and
// dangling references are skipped.
func populateOrders(ctx context.Context, db *mongo.Database, orders []models.Order) ([]orderView, error) {
	productIDs := make([]primitive.ObjectID, 0)
	buyerIDs := make([]primitive.ObjectID, 0)
	seenProduct := map[primitive.ObjectID]struct{}{}
	seenBuyer := map[primitive.ObjectID]struct{}{}

	for _, order := range orders {
		for _, pid := range order.Products {
			if _, ok := seenProduct[pid]; !ok {
				seenProduct[pid] = struct{}{}
				productIDs = append(productIDs, pid)
			}
		}
		if _, ok := seenBuyer[order.Buyer]; !ok {
			seenBuyer[order.Buyer] = struct{}{}
			buyerIDs = append(buyerIDs, order.Buyer)
		}
	}

	productByID := map[primitive.ObjectID]models.Product{}
	if len(productIDs) > 0 {
		cursor, err := db.Collection("products").Find(
			ctx,
			bson.M{"_id": bson.M{"$in": productIDs}},
			options.Find().SetProjection(withoutPhoto),
		)
		if err != nil {
			return nil, err
		}
		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			return nil, err
		}
		for _, p := range products {
			productByID[p.ID] = p
		}
	}

	buyerNameByID := map[primitive.ObjectID]string{}
	if len(buyerIDs) > 0 {
		cursor, err := db.Collection("users").Find(
			ctx,
			bson.M{"_id": bson.M{"$in": buyerIDs}},
			options.Find().SetProjection(bson.M{"name": 1}),
		)
		if err != nil {
			return nil, err
		}
		var buyers []models.User
		if err := cursor.All(ctx, &buyers); err != nil {
			return nil, err
		}
		for _, b := range buyers {
			buyerNameByID[b.ID] = b.Name
		}
	}

	return buildOrderViews(orders, productByID, buyerNameByID), nil
}

// buildOrderViews assembles the populated views from prefetched documents.
// Each order keeps only its own product list, duplicates and order included;
// references without a backing document are dropped.
func buildOrderViews(orders []models.Order, productByID map[primitive.ObjectID]models.Product, buyerNameByID map[primitive.ObjectID]string) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		populated := make([]models.Product, 0, len(order.Products))
		for _, pid := range order.Products {
			if p, ok := productByID[pid]; ok {
				populated = append(populated, p)
			}
		}
		views = append(views, orderView{
			ID:       order.ID,
			Products: populated,
			Payment:  order.Payment,
			Buyer: orderBuyer{
				ID:   order.Buyer,
				Name: buyerNameByID[order.Buyer],
			},
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
			UpdatedAt: order.UpdatedAt,
		})
	}
	return views
}
