package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInfo is owned by the checkout form and passed through untouched.
type CustomerInfo map[string]any

// OrderItem is the per-line snapshot handed to the payment step.
// Shipping and image are left out on purpose.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderPayload represents the full cart state at checkout time
type OrderPayload struct {
	ID        string          `json:"id"`
	Customer  CustomerInfo    `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}
