package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Any authorized caller may set any of the five values
// regardless of the current one; there is no transition table.
const (
	StatusNotProcess = "Not Process"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// OrderStatuses lists every accepted status value.
var OrderStatuses = []string{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ValidOrderStatus reports whether s is one of the five enumerated values.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentResult is the opaque outcome persisted from the payment gateway.
type PaymentResult struct {
	Success       bool   `bson:"success" json:"success"`
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Message       string `bson:"message,omitempty" json:"message,omitempty"`
}

// Order is a purchase record. Products are referenced by id only; duplicates
// represent quantity by repetition and their order is preserved. Status is
// the only field mutated after creation.
type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	Payment   PaymentResult        `bson:"payment" json:"payment"`
	Buyer     primitive.ObjectID   `bson:"buyer" json:"buyer"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
