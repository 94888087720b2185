package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JulesNsenda/kamelkross/internal/catalog"
	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/imageurl"
	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
)

const (
	defaultFeaturedLimit = 4
	maxFeaturedLimit     = 50
)

// CatalogSource is the part of catalog.Loader the handlers need.
type CatalogSource interface {
	Catalog(ctx context.Context, opts ...catalog.Option) *catalog.Catalog
	Status() domain.CatalogStatus
}

type CatalogHandler struct {
	source CatalogSource
	locale language.Tag
}

func NewCatalogHandler(source CatalogSource, locale language.Tag) *CatalogHandler {
	return &CatalogHandler{source: source, locale: locale}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *CatalogHandler) catalog(r *http.Request) *catalog.Catalog {
	return h.source.Catalog(r.Context(), catalog.WithLocale(h.locale))
}

// GET /api/v1/catalog/status
func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.source.Status())
}

// GET /api/v1/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CategoriesResponse{Categories: h.catalog(r).Categories()})
}

// GET /api/v1/products?category=&q=&sort=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order := catalog.SortOrder(q.Get("sort"))
	switch order {
	case catalog.SortFeed, catalog.SortPriceLow, catalog.SortPriceHigh, catalog.SortName:
	default:
		respondError(w, http.StatusBadRequest, "invalid_sort", "sort must be one of price-low, price-high, name")
		return
	}

	products := h.catalog(r).Find(catalog.Query{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Sort:     order,
	})
	respondJSON(w, http.StatusOK, productsResponse(products))
}

// GET /api/v1/products/featured?limit=
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeaturedLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxFeaturedLimit {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 50")
			return
		}
		limit = n
	}
	respondJSON(w, http.StatusOK, productsResponse(h.catalog(r).Featured(limit)))
}

// GET /api/v1/products/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog(r).ByID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, presentProduct(p))
}

func productsResponse(products []domain.Product) ProductsResponse {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = presentProduct(p)
	}
	return ProductsResponse{Products: out, Count: len(out)}
}

// presentProduct swaps share links for directly renderable image urls.
func presentProduct(p domain.Product) domain.Product {
	p.Image = imageurl.Resolve(p.Image)
	p.Images = imageurl.ResolveAll(p.Images)
	return p
}
