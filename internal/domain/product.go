package domain

import "github.com/shopspring/decimal"

// Product is one catalog entry decoded from a feed row. Products are immutable
// once loaded; a reload replaces the whole list.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Shipping    decimal.Decimal   `json:"shipping"`
	Category    string            `json:"category"`
	Sizes       []string          `json:"sizes"`
	Colors      []string          `json:"colors"`
	Image       string            `json:"image"`
	Images      []string          `json:"images"`
	InStock     bool              `json:"in_stock"`
	Featured    bool              `json:"featured"`
	Extra       map[string]string `json:"extra,omitempty"`
}
