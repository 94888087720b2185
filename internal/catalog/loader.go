package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/feed"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNoFeedURL  = errors.New("no feed url configured")
	ErrEmptyFeed  = errors.New("feed yielded no products")
	ErrFeedStatus = errors.New("feed returned non-success status")
)

const (
	loadFlightKey  = "catalog"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	FeedURL string
	Format  feed.Format
	// Timeout bounds the default client; zero means 30s.
	Timeout time.Duration
	// HTTPClient is optional; the default client is instrumented with otelhttp.
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

type loadState int

const (
	stateUnloaded loadState = iota
	stateLoaded
)

// Loader fetches the product feed once and serves the result for the rest of
// its lifetime. Any failure falls back to the built-in fixtures; Load never
// returns an error and never retries.
type Loader struct {
	feedURL string
	format  feed.Format
	client  *http.Client
	log     logrus.FieldLogger
	now     func() time.Time
	sfg     singleflight.Group // collapses concurrent first loads

	mu       sync.RWMutex
	state    loadState
	products []domain.Product
	status   domain.CatalogStatus
}

func NewLoader(cfg Config) *Loader {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		}
	}
	format := cfg.Format
	if format == "" {
		format = feed.FormatCSV
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{
		feedURL: cfg.FeedURL,
		format:  format,
		client:  client,
		log:     log,
		now:     time.Now,
		status:  domain.CatalogStatus{Source: domain.CatalogSourceUnloaded},
	}
}

// Load returns the session catalog, fetching it on the first call.
// Cancelling ctx does not abort an in-flight fetch, so a caller that goes away
// cannot pin the session to the fallback list.
func (l *Loader) Load(ctx context.Context) []domain.Product {
	if products, ok := l.cached(); ok {
		return products
	}

	fetchCtx := context.WithoutCancel(ctx)
	v, _, _ := l.sfg.Do(loadFlightKey, func() (interface{}, error) {
		if products, ok := l.cached(); ok {
			return products, nil
		}
		products, status := l.fetch(fetchCtx)
		l.mu.Lock()
		l.products = products
		l.status = status
		l.state = stateLoaded
		l.mu.Unlock()
		return slices.Clone(products), nil
	})
	return v.([]domain.Product)
}

// Catalog loads (if needed) and wraps the products in query views.
func (l *Loader) Catalog(ctx context.Context, opts ...Option) *Catalog {
	return New(l.Load(ctx), opts...)
}

// Status reports where the current list came from. Before the first Load the
// source is "unloaded".
func (l *Loader) Status() domain.CatalogStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func (l *Loader) cached() ([]domain.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != stateLoaded {
		return nil, false
	}
	return slices.Clone(l.products), true
}

func (l *Loader) fetch(ctx context.Context) ([]domain.Product, domain.CatalogStatus) {
	products, dropped, err := l.fetchFeed(ctx)
	loadedAt := l.now()
	if err != nil {
		fallback := Fixtures()
		source := domain.CatalogSourceFallback
		if errors.Is(err, ErrEmptyFeed) {
			source = domain.CatalogSourceEmptyFeed
		}
		l.log.WithField("error", err).WithField("feed_url", l.feedURL).
			Warn("catalog feed unavailable, serving fallback products")
		return fallback, domain.CatalogStatus{
			Source:   source,
			Reason:   err.Error(),
			Accepted: len(fallback),
			Dropped:  dropped,
			LoadedAt: &loadedAt,
		}
	}

	if dropped > 0 {
		l.log.WithField("dropped", dropped).Debug("catalog feed rows dropped")
	}
	l.log.WithField("products", len(products)).Info("catalog feed loaded")
	return products, domain.CatalogStatus{
		Source:   domain.CatalogSourceFeed,
		Accepted: len(products),
		Dropped:  dropped,
		LoadedAt: &loadedAt,
	}
}

func (l *Loader) fetchFeed(ctx context.Context) ([]domain.Product, int, error) {
	if l.feedURL == "" {
		return nil, 0, ErrNoFeedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.feedURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build feed request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, fmt.Errorf("%w: %d", ErrFeedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read feed: %w", err)
	}
	rows, err := l.format.Rows(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse feed: %w", err)
	}

	products, dropped := Decoder{}.Decode(rows)
	if len(products) == 0 {
		return nil, dropped, ErrEmptyFeed
	}
	return products, dropped, nil
}
