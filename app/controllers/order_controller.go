package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/bind"
	"github.com/luminabooks/lumina/pkg/middleware"
	"github.com/luminabooks/lumina/pkg/response"
)

// orderItemInput accepts the checkout payload the storefront sends.
// Only the book reference and quantity matter: price, title, and
// section are tolerated but ignored, since every line is re-priced
// from the catalog.
type orderItemInput struct {
	Book     string  `json:"book"`
	BookID   string  `json:"book_id"`
	Quantity int     `json:"quantity" validate:"nullable,gte=1"`
	Price    float64 `json:"price"`
	Title    string  `json:"title"`
	Section  string  `json:"section"`
}

func (it orderItemInput) bookRef() string {
	if it.Book != "" {
		return it.Book
	}
	return it.BookID
}

// storeOrderRequest tolerates the client-supplied total and status but
// never trusts them: the total is recomputed server-side and every
// order starts Pending.
type storeOrderRequest struct {
	Items  []orderItemInput `json:"items" validate:"required"`
	Total  float64          `json:"total"`
	Status string           `json:"status"`
}

// OrderController serves /api/orders.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Store handles POST /api/orders: records a Pending order priced from
// the catalog and returns it with the payment intent's client secret.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	var req storeOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	inputs := make([]services.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		inputs = append(inputs, services.OrderItemInput{BookID: it.bookRef(), Quantity: it.Quantity})
	}

	order, clientSecret, err := c.orders.Create(r.Context(), userID, inputs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			response.ValidationError(w, map[string]string{"items": "The items field is required."})
		case errors.Is(err, services.ErrNotFound):
			response.NotFound(w, "Book not found")
		default:
			response.Error(w, http.StatusInternalServerError, "Could not create order")
		}
		return
	}

	response.Created(w, map[string]interface{}{
		"order":         order,
		"client_secret": clientSecret,
	})
}

// Confirm handles POST /api/orders/{id}/confirm: verifies the payment
// intent with the processor and returns the order in its resulting
// state. Safe to call repeatedly.
func (c *OrderController) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	order, err := c.orders.Confirm(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not confirm order")
		return
	}
	response.Success(w, order)
}

// Index handles GET /api/orders/my-orders: the caller's orders, newest
// first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	orders, err := c.orders.MyOrders(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not fetch orders")
		return
	}
	response.Success(w, orders)
}

// Show handles GET /api/orders/{id}. Other users' orders read as 404.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	order, err := c.orders.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not fetch order")
		return
	}
	response.Success(w, order)
}
