package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is applied when a book is created without a category.
const DefaultCategory = "General"

// Review is embedded in Book, not a standalone entity. User is the
// reviewer's display name captured at post time — it does not follow
// later renames. Rating is deliberately unconstrained.
type Review struct {
	User      string    `bson:"user" json:"user"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// BookUpdate is the allow-listed field set an admin may change on an
// existing book. Nil fields are left untouched.
type BookUpdate struct {
	Title       *string
	Author      *string
	Description *string
	Price       *float64
	Category    *string
}

// Book is a catalog record with its reviews embedded in posting order.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
