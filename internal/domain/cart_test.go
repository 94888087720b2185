package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineItemTotals(t *testing.T) {
	item := NewLineItem(Product{
		ID:       "tee",
		Name:     "Tee",
		Price:    decimal.RequireFromString("12.50"),
		Shipping: decimal.RequireFromString("2.25"),
		Image:    "tee.jpg",
		Category: "Tops",
	}, "M", "Black", 3)

	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("37.50")))
	assert.True(t, item.ShippingTotal().Equal(decimal.RequireFromString("6.75")))
	assert.Equal(t, LineKey{ProductID: "tee", Size: "M", Color: "Black"}, item.Key())
	assert.Equal(t, "tee.jpg", item.Image)
	assert.Equal(t, "Tops", item.Category)
}

func TestLineKeyDistinguishesVariants(t *testing.T) {
	p := Product{ID: "tee", Name: "Tee"}

	assert.NotEqual(t, NewLineItem(p, "M", "Black", 1).Key(), NewLineItem(p, "L", "Black", 1).Key())
	assert.NotEqual(t, NewLineItem(p, "M", "Black", 1).Key(), NewLineItem(p, "M", "White", 1).Key())
	assert.Equal(t, NewLineItem(p, "M", "Black", 1).Key(), NewLineItem(p, "M", "Black", 4).Key())
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.True(t, PaymentStatusSucceeded.IsTerminal())
	assert.True(t, PaymentStatusFailed.IsTerminal())
}
