package controllers

import (
	"net/http"

	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/bind"
	"github.com/luminabooks/lumina/pkg/response"
)

type createIntentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentController serves /api/payment: a thin bridge that opens a
// payment intent for an arbitrary amount. Order-linked intents go
// through POST /api/orders instead.
type PaymentController struct {
	gateway services.PaymentGateway
}

func NewPaymentController(gateway services.PaymentGateway) *PaymentController {
	return &PaymentController{gateway: gateway}
}

// CreateIntent handles POST /api/payment/create-intent. A missing or
// non-positive amount is rejected with a field error.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if _, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		response.ValidationError(w, map[string]string{"amount": "The amount field is required."})
		return
	}

	intent, err := c.gateway.CreateIntent(r.Context(), req.Amount)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create payment intent")
		return
	}

	response.Success(w, map[string]string{"client_secret": intent.ClientSecret})
}
