package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultNotificationDuration is how long a confirmation stays on screen when
// the configuration does not say otherwise.
const DefaultNotificationDuration = 3 * time.Second

// Store is an ordered cart persisted under one storage key. Each mutation
// writes the whole cart before returning. Storage failures are logged and
// swallowed so a broken backend never breaks the page.
//
// A Store is not safe for concurrent use; open one per request.
type Store struct {
	slot     storage.Slot
	key      string
	items    []domain.LineItem
	notifier Notifier
	log      logrus.FieldLogger
	duration time.Duration
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if existing, ok := s.notifier.(multiNotifier); ok {
			s.notifier = append(existing, n)
			return
		}
		if s.notifier == nil {
			s.notifier = n
			return
		}
		s.notifier = multiNotifier{s.notifier, n}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func WithNotificationDuration(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.duration = d
		}
	}
}

// Open reads the cart stored under key. A missing or unreadable value gives
// an empty cart.
func Open(ctx context.Context, slot storage.Slot, key string, opts ...Option) *Store {
	s := &Store{
		slot:     slot,
		key:      key,
		items:    []domain.LineItem{},
		duration: DefaultNotificationDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	s.log = s.log.WithField("cart_key", key)
	s.load(ctx)
	return s
}

func (s *Store) Key() string {
	return s.key
}

// Items returns a copy of the line items in cart order.
func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Add merges into the line with the same product, size and color, or appends
// a new snapshot line. Quantities below 1 count as 1.
func (s *Store) Add(ctx context.Context, p domain.Product, size, color string, quantity int) domain.LineItem {
	if quantity < 1 {
		quantity = 1
	}

	key := domain.LineKey{ProductID: p.ID, Size: size, Color: color}
	idx := -1
	for i := range s.items {
		if s.items[i].Key() == key {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.items[idx].Quantity += quantity
	} else {
		s.items = append(s.items, domain.NewLineItem(p, size, color, quantity))
		idx = len(s.items) - 1
	}
	item := s.items[idx]

	s.save(ctx)
	s.notify(NotificationAdded, fmt.Sprintf("%s added to cart", p.Name))
	s.refreshCount()
	return item
}

// Remove deletes the line at index; out-of-range indexes are ignored.
func (s *Store) Remove(ctx context.Context, index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)

	s.save(ctx)
	s.notify(NotificationRemoved, fmt.Sprintf("%s removed from cart", removed.Name))
	s.refreshCount()
}

// UpdateQuantity overwrites the quantity at index, removing the line when
// quantity is zero or less.
func (s *Store) UpdateQuantity(ctx context.Context, index, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, index)
		return
	}
	if index < 0 || index >= len(s.items) {
		return
	}
	s.items[index].Quantity = quantity

	s.save(ctx)
	s.refreshCount()
}

func (s *Store) Clear(ctx context.Context) {
	s.items = []domain.LineItem{}

	s.save(ctx)
	s.notify(NotificationCleared, "Cart cleared")
	s.refreshCount()
}

func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (s *Store) Shipping() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.ShippingTotal())
	}
	return total
}

func (s *Store) Total() decimal.Decimal {
	return s.Subtotal().Add(s.Shipping())
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Store) load(ctx context.Context) {
	data, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithField("error", err).Warn("failed to read cart, starting empty")
		}
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.WithField("error", err).Warn("stored cart is unreadable, starting empty")
		return
	}
	for _, item := range items {
		if item.Quantity > 0 {
			s.items = append(s.items, item)
		}
	}
}

func (s *Store) save(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.WithField("error", err).Error("failed to encode cart")
		return
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		s.log.WithField("error", err).Error("failed to persist cart")
	}
}

func (s *Store) notify(kind NotificationKind, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(Notification{Kind: kind, Message: message, Duration: s.duration})
}

func (s *Store) refreshCount() {
	if s.notifier == nil {
		return
	}
	s.notifier.CountChanged(s.ItemCount())
}
