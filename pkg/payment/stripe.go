// Package payment bridges the order flow to Stripe's payment-intent API.
//
// The gateway only ever talks to Stripe server-to-server. The client
// receives the intent's client secret to complete the charge in the
// browser, but an order is marked Paid only after VerifyIntent confirms
// the intent's status with Stripe directly — a client-reported success
// flag is never trusted.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/luminabooks/lumina/config"
	"github.com/luminabooks/lumina/pkg/httpclient"
)

// ErrAmountRequired is returned when an intent is requested for a
// non-positive amount.
var ErrAmountRequired = errors.New("payment: amount is required")

// Outcome is the domain-level result of verifying an intent.
type Outcome string

const (
	// OutcomeSucceeded means the charge completed; the order may move to Paid.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed means the intent is canceled or the last attempt failed.
	OutcomeFailed Outcome = "failed"
	// OutcomePending means the intent is still in flight; the order stays Pending.
	OutcomePending Outcome = "pending"
)

// Intent is the subset of Stripe's payment-intent object the API uses.
// LastPaymentError is null until a charge attempt has failed; a fresh
// intent sits in requires_payment_method with no error recorded.
type Intent struct {
	ID               string        `json:"id"`
	ClientSecret     string        `json:"client_secret"`
	Status           string        `json:"status"`
	Amount           int64         `json:"amount"`
	LastPaymentError *PaymentError `json:"last_payment_error"`
}

// PaymentError is Stripe's record of the most recent failed attempt.
type PaymentError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Gateway talks to the Stripe REST API.
type Gateway struct {
	baseURL   string
	secretKey string
}

// NewGateway builds a gateway from config (STRIPE_SECRET_KEY,
// STRIPE_BASE_URL).
func NewGateway() *Gateway {
	return &Gateway{
		baseURL:   config.StripeBaseURL(),
		secretKey: config.StripeSecretKey(),
	}
}

// CreateIntent asks Stripe for a payment intent over the given amount in
// major currency units (USD). The amount is rounded to cents.
func (g *Gateway) CreateIntent(ctx context.Context, amount float64) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrAmountRequired
	}

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", int64(math.Round(amount*100))))
	form.Set("currency", "usd")
	form.Set("automatic_payment_methods[enabled]", "true")

	resp, err := httpclient.Post(g.baseURL+"/v1/payment_intents").
		Bearer(g.secretKey).
		Form(form).
		Timeout(15 * time.Second).
		Retry(2, 500*time.Millisecond).
		WithContext(ctx).
		Send()
	if err != nil {
		return nil, fmt.Errorf("payment: create intent: %w", err)
	}

	return decodeIntent(resp)
}

// GetIntent fetches the current state of an intent from Stripe.
func (g *Gateway) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	resp, err := httpclient.Get(g.baseURL+"/v1/payment_intents/"+url.PathEscape(intentID)).
		Bearer(g.secretKey).
		Timeout(15 * time.Second).
		Retry(2, 500*time.Millisecond).
		WithContext(ctx).
		Send()
	if err != nil {
		return nil, fmt.Errorf("payment: get intent: %w", err)
	}

	return decodeIntent(resp)
}

// VerifyIntent maps the intent's processor-side status onto a domain
// outcome. Only "succeeded" may move an order to Paid.
// requires_payment_method is ambiguous — it is both a fresh intent's
// initial status and where Stripe parks an intent after a declined
// attempt — so it counts as failed only once a payment error is
// recorded on the intent.
func (g *Gateway) VerifyIntent(ctx context.Context, intentID string) (Outcome, error) {
	intent, err := g.GetIntent(ctx, intentID)
	if err != nil {
		return OutcomePending, err
	}

	switch intent.Status {
	case "succeeded":
		return OutcomeSucceeded, nil
	case "canceled":
		return OutcomeFailed, nil
	case "requires_payment_method":
		if intent.LastPaymentError != nil {
			return OutcomeFailed, nil
		}
		return OutcomePending, nil
	default:
		// requires_confirmation, requires_action, processing, …
		return OutcomePending, nil
	}
}

func decodeIntent(resp *httpclient.Response) (*Intent, error) {
	if !resp.OK() {
		var se stripeError
		if err := resp.JSON(&se); err == nil && se.Error.Message != "" {
			return nil, fmt.Errorf("payment: stripe %d: %s", resp.StatusCode, se.Error.Message)
		}
		return nil, fmt.Errorf("payment: stripe returned %d", resp.StatusCode)
	}

	var intent Intent
	if err := resp.JSON(&intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
