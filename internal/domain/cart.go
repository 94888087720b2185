package domain

import "github.com/shopspring/decimal"

// LineItem is one cart entry. Name, price, shipping, image and category are a
// snapshot taken when the product was added, not a live link to the catalog.
type LineItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Shipping  decimal.Decimal `json:"shipping"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// LineKey identifies a distinct product/size/color combination.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

func (l LineItem) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l LineItem) ShippingTotal() decimal.Decimal {
	return l.Shipping.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewLineItem snapshots p into a line item for the given variant.
func NewLineItem(p Product, size, color string, quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Shipping:  p.Shipping,
		Image:     p.Image,
		Category:  p.Category,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	}
}
