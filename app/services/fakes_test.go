package services_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores implementing the service interfaces. They mirror the
// persistence semantics the services rely on: newest-first listings,
// atomic-feeling wishlist toggles, and compare-and-set status moves.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // hex ID → user
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return services.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}
	s.users[user.ID.Hex()] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) ToggleWishlist(_ context.Context, userID, bookID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, services.ErrNotFound
	}
	bid, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, services.ErrNotFound
	}

	kept := u.Wishlist[:0:0]
	removed := false
	for _, id := range u.Wishlist {
		if id == bid {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, bid)
	}
	u.Wishlist = kept

	out := make([]string, 0, len(u.Wishlist))
	for _, id := range u.Wishlist {
		out = append(out, id.Hex())
	}
	return out, nil
}

func (s *fakeUserStore) Wishlist(_ context.Context, userID string) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, services.ErrNotFound
	}
	return append([]primitive.ObjectID(nil), u.Wishlist...), nil
}

type fakeBookStore struct {
	mu    sync.Mutex
	books []*models.Book // insertion order
}

func newFakeBookStore() *fakeBookStore { return &fakeBookStore{} }

func (s *fakeBookStore) List(_ context.Context, search, category string) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Book{}
	for i := len(s.books) - 1; i >= 0; i-- { // newest first
		b := s.books[i]
		if search != "" {
			q := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(b.Title), q) &&
				!strings.Contains(strings.ToLower(b.Author), q) {
				continue
			}
		}
		if category != "" && category != "All" && b.Category != category {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *fakeBookStore) FindByID(_ context.Context, id string) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *fakeBookStore) findLocked(id string) (*models.Book, error) {
	for _, b := range s.books {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *fakeBookStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		for _, b := range s.books {
			if b.ID == id {
				out = append(out, *b)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeBookStore) Create(_ context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = primitive.NewObjectID()
	book.CreatedAt = time.Now().UTC()
	if book.Category == "" {
		book.Category = models.DefaultCategory
	}
	if book.Reviews == nil {
		book.Reviews = []models.Review{}
	}
	s.books = append(s.books, book)
	return nil
}

func (s *fakeBookStore) Update(_ context.Context, id string, upd models.BookUpdate) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.findLocked(id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Author != nil {
		b.Author = *upd.Author
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	if upd.Price != nil {
		b.Price = *upd.Price
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	return b, nil
}

func (s *fakeBookStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.books {
		if b.ID.Hex() == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

func (s *fakeBookStore) AppendReview(_ context.Context, bookID string, review models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.findLocked(bookID)
	if err != nil {
		return err
	}
	b.Reviews = append(b.Reviews, review)
	return nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]*models.Order{}}
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID.Hex()] = order
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if o.User.Hex() == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) TransitionStatus(_ context.Context, id, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return true, nil
}

type fakeGateway struct {
	mu          sync.Mutex
	outcome     payment.Outcome
	created     []float64
	verifyCalls int
	nextIntent  int
}

func newFakeGateway(outcome payment.Outcome) *fakeGateway {
	return &fakeGateway{outcome: outcome}
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount float64) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if amount <= 0 {
		return nil, payment.ErrAmountRequired
	}
	g.created = append(g.created, amount)
	g.nextIntent++
	id := fmt.Sprintf("pi_fake_%03d", g.nextIntent)
	return &payment.Intent{ID: id, ClientSecret: id + "_secret", Status: "requires_payment_method"}, nil
}

func (g *fakeGateway) VerifyIntent(_ context.Context, _ string) (payment.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.verifyCalls++
	return g.outcome, nil
}
