package services

import (
	"context"

	"github.com/luminabooks/lumina/app/models"
)

// WishlistService implements the per-user wishlist toggle and retrieval.
type WishlistService struct {
	users UserStore
	books BookStore
}

func NewWishlistService(users UserStore, books BookStore) *WishlistService {
	return &WishlistService{users: users, books: books}
}

// Toggle flips the book's membership in the user's wishlist and returns
// the resulting ID list. Applying it twice for the same pair restores
// the original membership — the store performs the flip atomically.
func (s *WishlistService) Toggle(ctx context.Context, userID, bookID string) ([]string, error) {
	ids, err := s.users.ToggleWishlist(ctx, userID, bookID)
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// List resolves the user's wishlist IDs to full book records, in stored
// order.
func (s *WishlistService) List(ctx context.Context, userID string) ([]models.Book, error) {
	ids, err := s.users.Wishlist(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}

	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return books, nil
}
