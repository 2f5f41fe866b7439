package services

import (
	"context"
	"time"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/pkg/cache"
	"github.com/luminabooks/lumina/pkg/metrics"
)

const (
	catalogCachePrefix = "catalog:"
	catalogCacheTTL    = time.Minute
)

// CatalogService implements book listing, lookup, admin writes, and
// review submission.
type CatalogService struct {
	books BookStore
	users UserStore
}

func NewCatalogService(books BookStore, users UserStore) *CatalogService {
	return &CatalogService{books: books, users: users}
}

// List returns books newest first, filtered per the store semantics
// (case-insensitive title OR author substring, exact category with the
// "All" sentinel disabled). Results are cached per filter combination;
// admin writes and review posts invalidate the whole prefix.
func (s *CatalogService) List(ctx context.Context, search, category string) ([]models.Book, error) {
	key := catalogCachePrefix + search + "|" + category

	var cached []models.Book
	if cache.Get(key, &cached) {
		metrics.CacheHits.WithLabelValues(catalogCachePrefix).Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(catalogCachePrefix).Inc()

	books, err := s.books.List(ctx, search, category)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(key, books, catalogCacheTTL)
	return books, nil
}

// Get fetches one book.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return book, nil
}

// Create inserts a new book (admin only; the controller gates).
func (s *CatalogService) Create(ctx context.Context, book *models.Book) error {
	if err := s.books.Create(ctx, book); err != nil {
		return storeErr(err)
	}
	s.invalidate()
	return nil
}

// Update applies an allow-listed field set and returns the updated book.
// A missing ID is ErrNotFound, never a silent null success.
func (s *CatalogService) Update(ctx context.Context, id string, upd models.BookUpdate) (*models.Book, error) {
	book, err := s.books.Update(ctx, id, upd)
	if err != nil {
		return nil, storeErr(err)
	}
	s.invalidate()
	return book, nil
}

// Delete removes a book.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	s.invalidate()
	return nil
}

// AddReview appends a review carrying the poster's display name as of
// now. The rating is stored as supplied — the catalog has never
// range-limited it. Returns the updated book.
func (s *CatalogService) AddReview(ctx context.Context, bookID, userID string, rating int, comment string) (*models.Book, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}

	review := models.Review{
		User:      user.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.books.AppendReview(ctx, bookID, review); err != nil {
		return nil, storeErr(err)
	}
	s.invalidate()

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, storeErr(err)
	}
	return book, nil
}

func (s *CatalogService) invalidate() {
	_ = cache.DelPrefix(catalogCachePrefix)
}
