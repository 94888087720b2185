package payment

import (
	"context"
	"errors"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// Breaker wraps a Collaborator so repeated provider failures stop reaching
// the provider for a cool-down period. Calls made while open fail fast with
// gobreaker.ErrOpenState.
type Breaker struct {
	next Collaborator
	cb   *gobreaker.CircuitBreaker[*Result]
}

type BreakerConfig struct {
	Name string
	// MaxFailures consecutive failures open the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a probe.
	OpenTimeout time.Duration
}

func NewBreaker(next Collaborator, cfg BreakerConfig) *Breaker {
	if cfg.Name == "" {
		cfg.Name = "payment"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures
	return &Breaker{
		next: next,
		cb: gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
			Name:    cfg.Name,
			Timeout: cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			// an unknown session is the caller's mistake, not a provider outage
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrSessionNotFound)
			},
		}),
	}
}

func (b *Breaker) Begin(ctx context.Context, cartKey string, payload *domain.OrderPayload) (*Result, error) {
	return b.cb.Execute(func() (*Result, error) {
		return b.next.Begin(ctx, cartKey, payload)
	})
}

func (b *Breaker) Status(ctx context.Context, sessionID string) (*Result, error) {
	return b.cb.Execute(func() (*Result, error) {
		return b.next.Status(ctx, sessionID)
	})
}

// State reports the circuit state for diagnostics.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
