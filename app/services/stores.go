// Package services holds the business rules between the HTTP controllers
// and the stores. Services accept store interfaces so tests can run
// against in-memory fakes.
package services

import (
	"context"
	"errors"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/repositories"
	"github.com/luminabooks/lumina/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors controllers map onto the HTTP error taxonomy.
var (
	ErrNotFound           = errors.New("services: not found")
	ErrEmailTaken         = errors.New("services: email already registered")
	ErrInvalidCredentials = errors.New("services: invalid credentials")
)

// UserStore is the persistence surface the services need for users.
// Implemented by repositories.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ToggleWishlist(ctx context.Context, userID, bookID string) ([]string, error)
	Wishlist(ctx context.Context, userID string) ([]primitive.ObjectID, error)
}

// BookStore is the persistence surface for the catalog.
// Implemented by repositories.BookRepository.
type BookStore interface {
	List(ctx context.Context, search, category string) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, id string, upd models.BookUpdate) (*models.Book, error)
	Delete(ctx context.Context, id string) error
	AppendReview(ctx context.Context, bookID string, review models.Review) error
}

// OrderStore is the persistence surface for the order ledger.
// Implemented by repositories.OrderRepository.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)
}

// PaymentGateway is the processor surface the order flow needs.
// Implemented by payment.Gateway.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64) (*payment.Intent, error)
	VerifyIntent(ctx context.Context, intentID string) (payment.Outcome, error)
}

// storeErr translates repository sentinels into service sentinels.
func storeErr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repositories.ErrDuplicate) {
		return ErrEmailTaken
	}
	return err
}
