package catalog

import (
	"strings"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/shopspring/decimal"
)

// Recognised feed columns. Anything else lands in Product.Extra.
const (
	colID          = "id"
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colShipping    = "shipping"
	colCategory    = "category"
	colSizes       = "sizes"
	colColors      = "colors"
	colImage       = "image"
	colImages      = "images"
	colInStock     = "in_stock"
	colFeatured    = "featured"
)

// Decoder turns parsed feed rows into products. The first row is the header.
type Decoder struct{}

// Decode returns the accepted products in feed order and how many data rows
// were dropped for missing an id, a name or a price.
func (Decoder) Decode(rows [][]string) ([]domain.Product, int) {
	if len(rows) < 2 {
		return nil, 0
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeHeader(h)
	}

	products := make([]domain.Product, 0, len(rows)-1)
	dropped := 0
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				fields[key] = row[i]
			}
		}
		p, ok := decodeProduct(fields)
		if !ok {
			dropped++
			continue
		}
		products = append(products, p)
	}
	return products, dropped
}

func decodeProduct(fields map[string]string) (domain.Product, bool) {
	price, hasPrice := fields[colPrice]
	if fields[colID] == "" || fields[colName] == "" || !hasPrice {
		return domain.Product{}, false
	}

	p := domain.Product{
		ID:          fields[colID],
		Name:        fields[colName],
		Description: fields[colDescription],
		Price:       parseAmount(price),
		Shipping:    parseAmount(fields[colShipping]),
		Category:    fields[colCategory],
		Sizes:       splitList(fields[colSizes]),
		Colors:      splitList(fields[colColors]),
		Image:       fields[colImage],
		Images:      splitList(fields[colImages]),
		InStock:     true,
		Featured:    parseFlag(fields[colFeatured]),
	}
	// A present in_stock column is authoritative, so an empty cell reads as false.
	if v, ok := fields[colInStock]; ok {
		p.InStock = parseFlag(v)
	}

	for key, value := range fields {
		if key == "" || isKnownColumn(key) {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[key] = value
	}
	return p, true
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), "_")
}

// parseAmount coerces unparsable or negative amounts to zero.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isKnownColumn(key string) bool {
	switch key {
	case colID, colName, colDescription, colPrice, colShipping, colCategory,
		colSizes, colColors, colImage, colImages, colInStock, colFeatured:
		return true
	}
	return false
}
