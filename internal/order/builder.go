package order

import (
	"maps"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Builder assembles the payload handed to the payment step. It never touches
// the cart it reads from.
type Builder struct {
	currency string
	now      func() time.Time
	newID    func() string
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) {
		b.newID = newID
	}
}

func NewBuilder(currency string, opts ...Option) *Builder {
	b := &Builder{
		currency: currency,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build snapshots items and customer into a fresh payload stamped with the
// current time.
func (b *Builder) Build(items []domain.LineItem, customer domain.CustomerInfo) *domain.OrderPayload {
	payload := &domain.OrderPayload{
		ID:        b.newID(),
		Customer:  maps.Clone(customer),
		Items:     make([]domain.OrderItem, 0, len(items)),
		Subtotal:  decimal.Zero,
		Shipping:  decimal.Zero,
		Currency:  b.currency,
		CreatedAt: b.now(),
	}

	for _, item := range items {
		payload.Items = append(payload.Items, domain.OrderItem{
			ID:       item.ProductID,
			Name:     item.Name,
			Size:     item.Size,
			Color:    item.Color,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
		payload.Subtotal = payload.Subtotal.Add(item.LineTotal())
		payload.Shipping = payload.Shipping.Add(item.ShippingTotal())
	}

	payload.Total = payload.Subtotal.Add(payload.Shipping)
	return payload
}
