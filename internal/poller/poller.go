package poller

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/JulesNsenda/kamelkross/internal/cart"
	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/publisher"
	"github.com/JulesNsenda/kamelkross/internal/storage"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Poller consumes checkout events and empties the paid-for carts.
type Poller struct {
	slot   storage.Slot
	reader messageReader
	log    logrus.FieldLogger
}

func NewPoller(slot storage.Slot, log logrus.FieldLogger, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    publisher.Topic,
		GroupID:  "storefront-cart-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{slot: slot, reader: reader, log: log}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.clearNextCart(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.log.WithField("error", err).Warn("error closing reader")
	}
}

func (p *Poller) clearNextCart(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.log.WithField("error", err).Warn("error reading message")
		}
		return
	}

	var event domain.CheckoutCompleted
	if err := json.Unmarshal(m.Value, &event); err != nil {
		p.log.WithField("error", err).Warn("error parsing message")
		return
	}
	if event.CartKey == "" {
		p.log.Warn("missing cart_key in checkout event")
		return
	}

	cart.Open(ctx, p.slot, event.CartKey, cart.WithLogger(p.log)).Clear(ctx)
	p.log.WithField("cart_key", event.CartKey).WithField("session_id", event.SessionID).
		Info("cart cleared after checkout")
}
