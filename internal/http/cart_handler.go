package http

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/cart"
	"github.com/JulesNsenda/kamelkross/internal/catalog"
	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/imageurl"
	"github.com/JulesNsenda/kamelkross/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const maxQuantity = 99

type CartHandler struct {
	slot     storage.Slot
	source   CatalogSource
	symbol   string
	duration time.Duration
}

func NewCartHandler(slot storage.Slot, source CatalogSource, currencySymbol string, notificationDuration time.Duration) *CartHandler {
	return &CartHandler{
		slot:     slot,
		source:   source,
		symbol:   currencySymbol,
		duration: notificationDuration,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type NotificationDTO struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}

type CartResponse struct {
	Items          []domain.LineItem `json:"items"`
	ItemCount      int               `json:"item_count"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Shipping       decimal.Decimal   `json:"shipping"`
	Total          decimal.Decimal   `json:"total"`
	CurrencySymbol string            `json:"currency_symbol"`
	Notifications  []NotificationDTO `json:"notifications"`
}

// open loads the session cart with a recorder so the response can carry the
// notifications raised by this request.
func (h *CartHandler) open(w http.ResponseWriter, r *http.Request) (*cart.Store, *cart.Recorder, bool) {
	if sessionID(r) == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session")
		return nil, nil, false
	}
	rec := &cart.Recorder{}
	store := cart.Open(r.Context(), h.slot, cartKey(r),
		cart.WithLogger(requestLogger(r)),
		cart.WithNotifier(cart.LogNotifier{Log: requestLogger(r)}),
		cart.WithNotifier(rec),
		cart.WithNotificationDuration(h.duration),
	)
	return store, rec, true
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, rec, ok := h.open(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse(store, rec))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity > maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	p, found := h.source.Catalog(r.Context()).ByID(req.ProductID)
	if !found {
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}
	if !p.InStock {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}
	if len(p.Sizes) > 0 && !slices.Contains(p.Sizes, req.Size) {
		respondError(w, http.StatusBadRequest, "invalid_size", "size is not offered for this product")
		return
	}
	if len(p.Colors) > 0 && !slices.Contains(p.Colors, req.Color) {
		respondError(w, http.StatusBadRequest, "invalid_color", "color is not offered for this product")
		return
	}

	store, rec, ok := h.open(w, r)
	if !ok {
		return
	}
	store.Add(r.Context(), p, req.Size, req.Color, req.Quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse(store, rec))
}

// PUT /api/v1/cart/items/{index}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity > maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	store, rec, ok := h.open(w, r)
	if !ok {
		return
	}
	index, ok := lineIndex(w, r, store)
	if !ok {
		return
	}
	// zero or less removes the line
	store.UpdateQuantity(r.Context(), index, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse(store, rec))
}

// DELETE /api/v1/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, rec, ok := h.open(w, r)
	if !ok {
		return
	}
	index, ok := lineIndex(w, r, store)
	if !ok {
		return
	}
	store.Remove(r.Context(), index)
	respondJSON(w, http.StatusOK, h.cartResponse(store, rec))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, rec, ok := h.open(w, r)
	if !ok {
		return
	}
	store.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse(store, rec))
}

func lineIndex(w http.ResponseWriter, r *http.Request, store *cart.Store) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return 0, false
	}
	if index < 0 || index >= len(store.Items()) {
		respondError(w, http.StatusNotFound, "line_not_found", "no cart line at that index")
		return 0, false
	}
	return index, true
}

func (h *CartHandler) cartResponse(store *cart.Store, rec *cart.Recorder) CartResponse {
	items := store.Items()
	for i := range items {
		items[i].Image = imageurl.Resolve(items[i].Image)
	}

	notifications := []NotificationDTO{}
	for _, n := range rec.Notifications() {
		notifications = append(notifications, NotificationDTO{
			Kind:       string(n.Kind),
			Message:    n.Message,
			DurationMS: n.Duration.Milliseconds(),
		})
	}

	return CartResponse{
		Items:          items,
		ItemCount:      store.ItemCount(),
		Subtotal:       store.Subtotal(),
		Shipping:       store.Shipping(),
		Total:          store.Total(),
		CurrencySymbol: h.symbol,
		Notifications:  notifications,
	}
}

var _ CatalogSource = (*catalog.Loader)(nil)
