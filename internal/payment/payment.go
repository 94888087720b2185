package payment

import (
	"context"
	"errors"

	"github.com/JulesNsenda/kamelkross/internal/domain"
)

var ErrSessionNotFound = errors.New("payment session not found")

// Result is what the payment step reports for one attempt.
type Result struct {
	SessionID   string               `json:"session_id"`
	Status      domain.PaymentStatus `json:"status"`
	RedirectURL string               `json:"redirect_url,omitempty"`
	// CartKey is the cart the session was opened for.
	CartKey     string               `json:"-"`
}

// Collaborator is the external payment step. Begin hands over an order and
// usually returns a pending session the shopper completes elsewhere; Status
// reports how that session ended up. The cart key travels with the session so
// a confirmation can be matched to the cart that paid.
type Collaborator interface {
	Begin(ctx context.Context, cartKey string, payload *domain.OrderPayload) (*Result, error)
	Status(ctx context.Context, sessionID string) (*Result, error)
}
