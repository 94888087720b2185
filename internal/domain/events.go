package domain

import "time"

// CheckoutCompleted is published once the payment step reports success for
// the cart stored under CartKey.
type CheckoutCompleted struct {
	CartKey     string    `json:"cart_key"`
	SessionID   string    `json:"session_id"`
	CompletedAt time.Time `json:"completed_at"`
}
