package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle. An order is created Pending and transitions in place:
// Pending → Paid once the payment intent is verified with the processor,
// or Pending → Failed when the intent ends up canceled. There is never a
// second order row for the paid state.
const (
	OrderPending = "Pending"
	OrderPaid    = "Paid"
	OrderFailed  = "Failed"
)

// LineItem captures a book at order time: title and price are copied so
// later catalog edits don't rewrite past orders.
type LineItem struct {
	Book     primitive.ObjectID `bson:"book" json:"book"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Title    string             `bson:"title" json:"title"`
	Price    float64            `bson:"price" json:"price"`
	Section  string             `bson:"section,omitempty" json:"section,omitempty"`
}

// Order belongs to exactly one user. Total is recomputed server-side
// from the line items; PaymentIntentID links the order to its processor
// intent for server-side verification.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []LineItem         `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	PaymentIntentID string             `bson:"payment_intent_id,omitempty" json:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
