package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/catalog"
	"github.com/JulesNsenda/kamelkross/internal/checkout"
	"github.com/JulesNsenda/kamelkross/internal/config"
	"github.com/JulesNsenda/kamelkross/internal/feed"
	h "github.com/JulesNsenda/kamelkross/internal/http"
	"github.com/JulesNsenda/kamelkross/internal/logging"
	"github.com/JulesNsenda/kamelkross/internal/order"
	"github.com/JulesNsenda/kamelkross/internal/payment"
	"github.com/JulesNsenda/kamelkross/internal/poller"
	"github.com/JulesNsenda/kamelkross/internal/publisher"
	"github.com/JulesNsenda/kamelkross/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/text/language"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, os.Stdout)
	if err != nil {
		logrus.Fatalf("failed to set up logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slot, closeSlot, err := openSlot(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer closeSlot()

	format, err := feed.ParseFormat(cfg.FeedFormat)
	if err != nil {
		log.Fatalf("invalid FEED_FORMAT: %v", err)
	}
	locale, err := language.Parse(cfg.SortLocale)
	if err != nil {
		log.Fatalf("invalid SORT_LOCALE: %v", err)
	}

	loader := catalog.NewLoader(catalog.Config{
		FeedURL: cfg.FeedURL,
		Format:  format,
		Timeout: cfg.FeedTimeout,
		Logger:  log.WithField("component", "catalog"),
	})
	// warm the catalog so the first visitor doesn't wait on the feed
	go loader.Load(ctx)

	routerCfg := h.RouterConfig{
		Catalog:            h.NewCatalogHandler(loader, locale),
		Cart:               h.NewCartHandler(slot, loader, cfg.CurrencySymbol, cfg.NotificationDuration),
		Logger:             log,
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}

	var pub checkout.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := publisher.NewPublisher(cfg.KafkaBrokers...)
		defer kafkaPub.Close()
		pub = kafkaPub

		p := poller.NewPoller(slot, log.WithField("component", "poller"), cfg.KafkaBrokers...)
		defer p.Close()
		go p.Run(ctx)
		log.Infof("checkout events via kafka %v", cfg.KafkaBrokers)
	}

	if cfg.StripeSecretKey != "" {
		payments := payment.NewBreaker(payment.NewStripe(payment.StripeConfig{
			SecretKey:  cfg.StripeSecretKey,
			SuccessURL: cfg.CheckoutSuccessURL,
			CancelURL:  cfg.CheckoutCancelURL,
		}), payment.BreakerConfig{Name: "stripe"})

		svc := checkout.NewService(checkout.Config{
			Slot:           slot,
			Builder:        order.NewBuilder(cfg.CurrencyCode),
			Payments:       payments,
			Publisher:      pub,
			PaymentTimeout: cfg.PaymentTimeout,
			Logger:         log.WithField("component", "checkout"),
		})
		routerCfg.Checkout = h.NewCheckoutHandler(svc)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(h.NewRouter(routerCfg), "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}

// openSlot connects the configured cart storage backend and returns a func
// that releases it.
func openSlot(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (storage.Slot, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		log.Infof("connected to redis at %s", cfg.RedisAddr)
		return storage.NewRedis(client), func() { client.Close() }, nil

	case config.BackendMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		slot := storage.NewMongo(db)
		if err := slot.CreateIndexes(ctx); err != nil {
			db.Client().Disconnect(context.Background())
			return nil, nil, err
		}
		log.Infof("connected to mongodb at %s", cfg.MongoURI)
		return slot, func() { db.Client().Disconnect(context.Background()) }, nil

	case config.BackendMemory:
		log.Warn("using in-memory cart storage, carts are lost on restart")
		return storage.NewMemory(), func() {}, nil

	default:
		slot, err := storage.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := slot.RunMigrations(); err != nil {
			slot.Close()
			return nil, nil, err
		}
		log.Infof("using sqlite cart storage at %s", cfg.SQLitePath)
		return slot, func() { slot.Close() }, nil
	}
}
