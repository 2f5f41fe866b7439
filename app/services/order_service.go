package services

import (
	"context"
	"errors"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/pkg/metrics"
	"github.com/luminabooks/lumina/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrEmptyOrder is returned when an order request carries no items.
var ErrEmptyOrder = errors.New("services: order has no items")

// OrderItemInput is one requested line: which book and how many copies.
type OrderItemInput struct {
	BookID   string
	Quantity int
}

// OrderService implements order creation and payment confirmation.
type OrderService struct {
	orders  OrderStore
	books   BookStore
	gateway PaymentGateway
}

func NewOrderService(orders OrderStore, books BookStore, gateway PaymentGateway) *OrderService {
	return &OrderService{orders: orders, books: books, gateway: gateway}
}

// Create resolves the requested books against the catalog, recomputes
// the total from stored prices, opens a payment intent for that amount,
// and records a Pending order. Client-supplied prices are never trusted.
// An item referencing an unknown book fails the whole order.
func (s *OrderService) Create(ctx context.Context, userID string, inputs []OrderItemInput) (*models.Order, string, error) {
	if len(inputs) == 0 {
		return nil, "", ErrEmptyOrder
	}

	user, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	items := make([]models.LineItem, 0, len(inputs))
	total := 0.0
	for _, in := range inputs {
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		book, err := s.books.FindByID(ctx, in.BookID)
		if err != nil {
			return nil, "", storeErr(err)
		}
		items = append(items, models.LineItem{
			Book:     book.ID,
			Quantity: qty,
			Title:    book.Title,
			Price:    book.Price,
			Section:  book.Category,
		})
		total += book.Price * float64(qty)
	}

	intent, err := s.gateway.CreateIntent(ctx, total)
	if err != nil {
		return nil, "", err
	}

	order := &models.Order{
		User:            user,
		Items:           items,
		Total:           total,
		Status:          models.OrderPending,
		PaymentIntentID: intent.ID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, "", storeErr(err)
	}

	metrics.OrdersCreated.Inc()
	return order, intent.ClientSecret, nil
}

// Confirm asks the processor for the intent's current state and moves
// the order accordingly: succeeded marks it Paid, a terminal failure
// marks it Failed, anything else leaves it Pending. Confirming an
// already-Paid order is a no-op success. Orders belonging to other
// users read as not found.
func (s *OrderService) Confirm(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderPaid {
		return order, nil
	}

	outcome, err := s.gateway.VerifyIntent(ctx, order.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	result := models.OrderPending
	switch outcome {
	case payment.OutcomeSucceeded:
		if _, err := s.orders.TransitionStatus(ctx, orderID, models.OrderPending, models.OrderPaid); err != nil {
			return nil, err
		}
		result = models.OrderPaid
	case payment.OutcomeFailed:
		if _, err := s.orders.TransitionStatus(ctx, orderID, models.OrderPending, models.OrderFailed); err != nil {
			return nil, err
		}
		result = models.OrderFailed
	}
	metrics.PaymentOutcomes.WithLabelValues(result).Inc()

	refreshed, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}
	return refreshed, nil
}

// MyOrders lists the caller's orders newest first.
func (s *OrderService) MyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// Get returns one of the caller's orders.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	return s.owned(ctx, userID, orderID)
}

func (s *OrderService) owned(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}
	if order.User.Hex() != userID {
		return nil, ErrNotFound
	}
	return order, nil
}
