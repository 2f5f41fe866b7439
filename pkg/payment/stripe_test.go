package payment_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminabooks/lumina/pkg/httpclient"
	"github.com/luminabooks/lumina/pkg/payment"
)

// scriptedTransport answers outbound requests from canned responses and
// records what was sent.
type scriptedTransport struct {
	status   int
	body     string
	lastReq  *http.Request
	lastBody string
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.lastReq = req
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		s.lastBody = string(raw)
	}
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(s.body))),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func install(t *testing.T, tr *scriptedTransport) {
	t.Helper()
	httpclient.DefaultClient.Transport = tr
	t.Cleanup(httpclient.ResetTransport)
}

func TestCreateIntentSendsCents(t *testing.T) {
	tr := &scriptedTransport{
		status: http.StatusOK,
		body:   `{"id":"pi_123","client_secret":"pi_123_secret","status":"requires_payment_method","amount":2599}`,
	}
	install(t, tr)

	intent, err := payment.NewGateway().CreateIntent(context.Background(), 25.99)
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)

	require.NotNil(t, tr.lastReq)
	assert.Equal(t, http.MethodPost, tr.lastReq.Method)
	assert.Contains(t, tr.lastReq.URL.Path, "/v1/payment_intents")
	assert.Contains(t, tr.lastReq.Header.Get("Authorization"), "Bearer ")
	assert.Contains(t, tr.lastBody, "amount=2599")
	assert.Contains(t, tr.lastBody, "currency=usd")
}

func TestCreateIntentRejectsZeroAmount(t *testing.T) {
	_, err := payment.NewGateway().CreateIntent(context.Background(), 0)
	assert.ErrorIs(t, err, payment.ErrAmountRequired)
}

func TestCreateIntentSurfacesStripeError(t *testing.T) {
	tr := &scriptedTransport{
		status: http.StatusPaymentRequired,
		body:   `{"error":{"message":"Your card was declined."}}`,
	}
	install(t, tr)

	_, err := payment.NewGateway().CreateIntent(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestVerifyIntentOutcomes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want payment.Outcome
	}{
		{
			"succeeded",
			`{"id":"pi_123","status":"succeeded"}`,
			payment.OutcomeSucceeded,
		},
		{
			"canceled",
			`{"id":"pi_123","status":"canceled"}`,
			payment.OutcomeFailed,
		},
		{
			// A fresh intent waiting for the client: not a failure.
			"requires_payment_method fresh",
			`{"id":"pi_123","status":"requires_payment_method","last_payment_error":null}`,
			payment.OutcomePending,
		},
		{
			// The same status after a declined attempt is terminal.
			"requires_payment_method after decline",
			`{"id":"pi_123","status":"requires_payment_method","last_payment_error":{"code":"card_declined","message":"Your card was declined."}}`,
			payment.OutcomeFailed,
		},
		{
			"processing",
			`{"id":"pi_123","status":"processing"}`,
			payment.OutcomePending,
		},
		{
			"requires_action",
			`{"id":"pi_123","status":"requires_action"}`,
			payment.OutcomePending,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &scriptedTransport{status: http.StatusOK, body: tc.body}
			install(t, tr)

			outcome, err := payment.NewGateway().VerifyIntent(context.Background(), "pi_123")
			require.NoError(t, err)
			assert.Equal(t, tc.want, outcome)
		})
	}
}
