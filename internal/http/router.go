package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Catalog            *CatalogHandler
	Cart               *CartHandler
	Checkout           *CheckoutHandler // optional; nil disables checkout routes
	Logger             logrus.FieldLogger
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(cfg RouterConfig) chi.Router {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(SessionMiddleware)
	r.Use(LoggerMiddleware(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	}
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/status", cfg.Catalog.Status)
		r.Get("/categories", cfg.Catalog.Categories)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Catalog.List)
			r.Get("/featured", cfg.Catalog.Featured)
			r.Get("/{id}", cfg.Catalog.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{index}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{index}", cfg.Cart.RemoveItem)
		})
		if cfg.Checkout != nil {
			r.Post("/checkout", cfg.Checkout.Start)
			r.Post("/checkout/{session_id}/confirm", cfg.Checkout.Confirm)
		}
	})

	return r
}
