package catalog

import (
	"slices"
	"strings"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = "all"

type SortOrder string

const (
	SortFeed      SortOrder = ""
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortName      SortOrder = "name"
)

// Catalog is a read-only view over one loaded product list.
type Catalog struct {
	products []domain.Product
	locale   language.Tag
}

type Option func(*Catalog)

// WithLocale sets the collation used for name sorting.
func WithLocale(tag language.Tag) Option {
	return func(c *Catalog) {
		c.locale = tag
	}
}

func New(products []domain.Product, opts ...Option) *Catalog {
	c := &Catalog{products: products, locale: language.English}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories lists distinct categories in order of first appearance.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range c.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func (c *Catalog) ByID(id string) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// FilterByCategory matches case-insensitively. AllCategories or an empty
// category returns everything.
func (c *Catalog) FilterByCategory(category string) []domain.Product {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, AllCategories) {
		return c.All()
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Search is a case-insensitive substring match over name, description and
// category.
func (c *Catalog) Search(query string) []domain.Product {
	return search(c.products, query)
}

// Featured returns up to limit flagged products, or the first limit products
// when none are flagged.
func (c *Catalog) Featured(limit int) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}
	out := []domain.Product{}
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
			if len(out) == limit {
				return out
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	return slices.Clone(c.products[:min(limit, len(c.products))])
}

// Sort returns a stably sorted copy of products. SortFeed and unknown orders
// keep the input order.
func (c *Catalog) Sort(products []domain.Product, order SortOrder) []domain.Product {
	out := slices.Clone(products)
	switch order {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortName:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(c.locale)
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
	return out
}

// Query bundles the listing parameters a storefront page sends.
type Query struct {
	Category string
	Search   string
	Sort     SortOrder
}

// Find applies category filter, then search, then sort.
func (c *Catalog) Find(q Query) []domain.Product {
	products := c.FilterByCategory(q.Category)
	if strings.TrimSpace(q.Search) != "" {
		products = search(products, q.Search)
	}
	return c.Sort(products, q.Sort)
}

func search(products []domain.Product, query string) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}
