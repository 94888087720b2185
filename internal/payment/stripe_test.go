package payment

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
)

type fakeSessions struct {
	created *stripe.CheckoutSessionParams
	session *stripe.CheckoutSession
	err     error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.created = params
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeSessions) Get(_ string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func samplePayload() *domain.OrderPayload {
	return &domain.OrderPayload{
		ID:       "order-1",
		Customer: domain.CustomerInfo{"email": "ada@example.com"},
		Items: []domain.OrderItem{
			{ID: "tee", Name: "Tee", Size: "M", Color: "Black", Quantity: 2, Price: decimal.RequireFromString("19.99")},
			{ID: "cap", Name: "Cap", Quantity: 1, Price: decimal.NewFromInt(10)},
		},
		Subtotal: decimal.RequireFromString("49.98"),
		Shipping: decimal.NewFromInt(5),
		Total:    decimal.RequireFromString("54.98"),
		Currency: "USD",
	}
}

func TestStripe_BeginBuildsSession(t *testing.T) {
	fake := &fakeSessions{session: &stripe.CheckoutSession{
		ID:            "cs_test_1",
		URL:           "https://checkout.stripe.com/c/pay/cs_test_1",
		Status:        stripe.CheckoutSessionStatusOpen,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
	}}
	s := newStripe(fake, StripeConfig{SuccessURL: "https://shop.example.com/ok", CancelURL: "https://shop.example.com/cart"})

	res, err := s.Begin(context.Background(), "cart:s1", samplePayload())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", res.SessionID)
	assert.Equal(t, domain.PaymentStatusPending, res.Status)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", res.RedirectURL)

	params := fake.created
	require.NotNil(t, params)
	assert.Equal(t, "order-1", *params.ClientReferenceID)
	assert.Equal(t, map[string]string{"order_id": "order-1", "cart_key": "cart:s1"}, params.Metadata)
	assert.Equal(t, "ada@example.com", *params.CustomerEmail)
	assert.Equal(t, "https://shop.example.com/ok", *params.SuccessURL)
	require.Len(t, params.LineItems, 3)
	assert.Equal(t, int64(1999), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *params.LineItems[0].Quantity)
	assert.Equal(t, "usd", *params.LineItems[0].PriceData.Currency)
	assert.Equal(t, "Tee (M, Black)", *params.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, "Cap", *params.LineItems[1].PriceData.ProductData.Name)
	assert.Equal(t, "Shipping", *params.LineItems[2].PriceData.ProductData.Name)
	assert.Equal(t, int64(500), *params.LineItems[2].PriceData.UnitAmount)
}

func TestStripe_BeginWithoutShippingOrEmail(t *testing.T) {
	fake := &fakeSessions{session: &stripe.CheckoutSession{ID: "cs_2"}}
	s := newStripe(fake, StripeConfig{})
	payload := samplePayload()
	payload.Shipping = decimal.Zero
	payload.Customer = nil

	_, err := s.Begin(context.Background(), "cart:s1", payload)
	require.NoError(t, err)

	assert.Len(t, fake.created.LineItems, 2)
	assert.Nil(t, fake.created.CustomerEmail)
}

func TestStripe_BeginError(t *testing.T) {
	s := newStripe(&fakeSessions{err: errors.New("card network down")}, StripeConfig{})

	res, err := s.Begin(context.Background(), "cart:s1", samplePayload())

	assert.Nil(t, res)
	assert.ErrorContains(t, err, "failed to create checkout session")
}

func TestStripe_StatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		session *stripe.CheckoutSession
		want    domain.PaymentStatus
	}{
		{"paid", &stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid}, domain.PaymentStatusSucceeded},
		{"free", &stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusNoPaymentRequired}, domain.PaymentStatusSucceeded},
		{"expired", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusExpired, PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}, domain.PaymentStatusFailed},
		{"open", &stripe.CheckoutSession{Status: stripe.CheckoutSessionStatusOpen, PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}, domain.PaymentStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStripe(&fakeSessions{session: tc.session}, StripeConfig{})

			res, err := s.Status(context.Background(), "cs_1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Status)
		})
	}
}

func TestStripe_StatusNotFound(t *testing.T) {
	s := newStripe(&fakeSessions{err: &stripe.Error{HTTPStatusCode: http.StatusNotFound}}, StripeConfig{})

	_, err := s.Status(context.Background(), "cs_missing")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStripe_StatusCarriesCartKey(t *testing.T) {
	fake := &fakeSessions{session: &stripe.CheckoutSession{
		ID:            "cs_test_1",
		Status:        stripe.CheckoutSessionStatusComplete,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Metadata:      map[string]string{"order_id": "order-1", "cart_key": "cart:s1"},
	}}
	s := newStripe(fake, StripeConfig{})

	res, err := s.Status(context.Background(), "cs_test_1")

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSucceeded, res.Status)
	assert.Equal(t, "cart:s1", res.CartKey)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), minorUnits(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(65000), minorUnits(decimal.NewFromInt(650)))
	assert.Equal(t, int64(1), minorUnits(decimal.RequireFromString("0.005")))
}
