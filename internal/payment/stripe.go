package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// sessionAPI is the part of the Stripe checkout session client we use.
type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Stripe runs the payment step as a hosted Stripe Checkout session.
type Stripe struct {
	sessions   sessionAPI
	successURL string
	cancelURL  string
}

func NewStripe(cfg StripeConfig) *Stripe {
	client := &session.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: cfg.SecretKey,
	}
	return newStripe(client, cfg)
}

func newStripe(api sessionAPI, cfg StripeConfig) *Stripe {
	return &Stripe{
		sessions:   api,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

const (
	metadataOrderID = "order_id"
	metadataCartKey = "cart_key"
)

func (s *Stripe) Begin(ctx context.Context, cartKey string, payload *domain.OrderPayload) (*Result, error) {
	currency := strings.ToLower(payload.Currency)
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(payload.ID),
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		Metadata: map[string]string{
			metadataOrderID: payload.ID,
			metadataCartKey: cartKey,
		},
	}
	params.Context = ctx
	if email, ok := payload.Customer["email"].(string); ok && email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	for _, item := range payload.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(minorUnits(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(itemLabel(item)),
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	if payload.Shipping.IsPositive() {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(minorUnits(payload.Shipping)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Shipping"),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	sess, err := s.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sessionResult(sess), nil
}

func (s *Stripe) Status(ctx context.Context, sessionID string) (*Result, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := s.sessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return sessionResult(sess), nil
}

func sessionResult(sess *stripe.CheckoutSession) *Result {
	return &Result{
		SessionID:   sess.ID,
		Status:      sessionStatus(sess),
		RedirectURL: sess.URL,
		CartKey:     sess.Metadata[metadataCartKey],
	}
}

func sessionStatus(sess *stripe.CheckoutSession) domain.PaymentStatus {
	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return domain.PaymentStatusSucceeded
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}

// minorUnits converts an amount to cents, assuming a two-decimal currency.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func itemLabel(item domain.OrderItem) string {
	var variant []string
	for _, v := range []string{item.Size, item.Color} {
		if v != "" {
			variant = append(variant, v)
		}
	}
	if len(variant) == 0 {
		return item.Name
	}
	return fmt.Sprintf("%s (%s)", item.Name, strings.Join(variant, ", "))
}
