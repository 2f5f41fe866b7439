package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. RoleAdmin is granted either by the bootstrap
// seeder or at signup when the email matches the configured admin email.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered customer. Email uniqueness is enforced by a
// unique index on the users collection. Wishlist holds book IDs; toggle
// semantics live in the repository as atomic updates.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password_hash" json:"-"` // never serialised
	Role         string               `bson:"role" json:"role"`
	Wishlist     []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
}

// PublicUser is the projection returned by the auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the user's public projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
