// Package repositories implements MongoDB persistence for the API's
// document model. All multi-step mutations (wishlist toggle, review
// append, status transitions) are expressed as atomic server-side
// updates, never fetch-mutate-save.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/luminabooks/lumina/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors shared by all repositories.
var (
	ErrNotFound  = errors.New("repositories: not found")
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// UserRepository handles persistence for User documents.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Create inserts a new user. A unique-index violation on email is
// surfaced as ErrDuplicate so signup can report a conflict even when two
// requests race past the lookup.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID looks up a user by hex ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RoleOf resolves the user's current stored role. Satisfies rbac.RoleResolver.
func (r *UserRepository) RoleOf(ctx context.Context, id string) (string, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// ToggleWishlist flips the book's membership in the user's wishlist and
// returns the resulting wishlist. The toggle is two atomic updates: a
// $pull that only matches when the book is present, then an $addToSet
// when the pull removed nothing. Each call inverts the previous one, so
// applying it twice restores the original membership.
func (r *UserRepository) ToggleWishlist(ctx context.Context, userID, bookID string) ([]string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	bid, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": uid, "wishlist": bid},
		bson.M{"$pull": bson.M{"wishlist": bid}},
	)
	if err != nil {
		return nil, err
	}

	if res.ModifiedCount == 0 {
		add, err := r.col.UpdateOne(ctx,
			bson.M{"_id": uid},
			bson.M{"$addToSet": bson.M{"wishlist": bid}},
		)
		if err != nil {
			return nil, err
		}
		if add.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}

	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		out = append(out, id.Hex())
	}
	return out, nil
}

// Wishlist returns the user's wishlist book IDs in stored order.
func (r *UserRepository) Wishlist(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}
