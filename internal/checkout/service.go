package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/cart"
	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/order"
	"github.com/JulesNsenda/kamelkross/internal/payment"
	"github.com/JulesNsenda/kamelkross/internal/storage"
	"github.com/sirupsen/logrus"
)

const defaultPaymentTimeout = 10 * time.Second

// EventPublisher hands a completed checkout to whatever clears the cart
// asynchronously.
type EventPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, event domain.CheckoutCompleted) error
}

type Config struct {
	Slot           storage.Slot
	Builder        *order.Builder
	Payments       payment.Collaborator
	Publisher      EventPublisher // optional
	PaymentTimeout time.Duration
	Logger         logrus.FieldLogger
}

// Attempt is a started checkout: the payload sent to the payment step and
// the session it opened.
type Attempt struct {
	Order   *domain.OrderPayload
	Payment *payment.Result
}

type Service struct {
	slot      storage.Slot
	builder   *order.Builder
	payments  payment.Collaborator
	publisher EventPublisher
	timeout   time.Duration
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(cfg Config) *Service {
	s := &Service{
		slot:      cfg.Slot,
		builder:   cfg.Builder,
		payments:  cfg.Payments,
		publisher: cfg.Publisher,
		timeout:   cfg.PaymentTimeout,
		log:       cfg.Logger,
		now:       time.Now,
	}
	if s.timeout <= 0 {
		s.timeout = defaultPaymentTimeout
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// Start snapshots the cart under cartKey into an order payload and opens a
// payment session for it. The cart is left untouched.
func (s *Service) Start(ctx context.Context, cartKey string, customer domain.CustomerInfo) (*Attempt, error) {
	store := cart.Open(ctx, s.slot, cartKey, cart.WithLogger(s.log))
	if store.IsEmpty() {
		return nil, ErrEmptyCart
	}

	payload := s.builder.Build(store.Items(), customer)

	paymentCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.payments.Begin(paymentCtx, cartKey, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to begin payment for order %s: %w", payload.ID, err)
	}

	s.log.WithField("order_id", payload.ID).WithField("session_id", result.SessionID).
		Info("checkout started")
	return &Attempt{Order: payload, Payment: result}, nil
}

// Confirm asks the payment step for the session outcome. A successful payment
// empties the cart, through the publisher when one is configured. A session
// opened for a different cart is refused and nothing is cleared.
func (s *Service) Confirm(ctx context.Context, cartKey, sessionID string) (*payment.Result, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	paymentCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.payments.Status(paymentCtx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment status: %w", err)
	}
	if result.CartKey != cartKey {
		s.log.WithField("cart_key", cartKey).WithField("session_id", sessionID).
			Warn("payment session does not belong to this cart")
		return nil, ErrCartMismatch
	}

	if result.Status != domain.PaymentStatusSucceeded {
		return result, nil
	}

	s.complete(ctx, cartKey, sessionID)
	return result, nil
}

func (s *Service) complete(ctx context.Context, cartKey, sessionID string) {
	if s.publisher != nil {
		event := domain.CheckoutCompleted{
			CartKey:     cartKey,
			SessionID:   sessionID,
			CompletedAt: s.now().UTC(),
		}
		err := s.publisher.PublishCheckoutCompleted(ctx, event)
		if err == nil {
			return
		}
		s.log.WithField("error", err).WithField("cart_key", cartKey).
			Warn("failed to publish checkout event, clearing cart directly")
	}

	cart.Open(ctx, s.slot, cartKey, cart.WithLogger(s.log)).Clear(ctx)
}
