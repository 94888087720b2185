package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/JulesNsenda/kamelkross/internal/checkout"
	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/JulesNsenda/kamelkross/internal/payment"
	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker/v2"
)

type CheckoutService interface {
	Start(ctx context.Context, cartKey string, customer domain.CustomerInfo) (*checkout.Attempt, error)
	Confirm(ctx context.Context, cartKey, sessionID string) (*payment.Result, error)
}

type CheckoutHandler struct {
	svc CheckoutService
}

func NewCheckoutHandler(svc CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type StartCheckoutRequestDTO struct {
	Customer domain.CustomerInfo `json:"customer"`
}

type CheckoutResponseDTO struct {
	Order       *domain.OrderPayload `json:"order,omitempty"`
	SessionID   string               `json:"session_id"`
	Status      string               `json:"status"`
	RedirectURL string               `json:"redirect_url,omitempty"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	if sessionID(r) == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session")
		return
	}

	var req StartCheckoutRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}

	attempt, err := h.svc.Start(r.Context(), cartKey(r), req.Customer)
	if err != nil {
		requestLogger(r).WithField("error", err).Warn("checkout start failed")
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		Order:       attempt.Order,
		SessionID:   attempt.Payment.SessionID,
		Status:      attempt.Payment.Status.String(),
		RedirectURL: attempt.Payment.RedirectURL,
	})
}

// POST /api/v1/checkout/{session_id}/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if sessionID(r) == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "missing session")
		return
	}

	result, err := h.svc.Confirm(r.Context(), cartKey(r), chi.URLParam(r, "session_id"))
	if err != nil {
		requestLogger(r).WithField("error", err).Warn("checkout confirm failed")
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		SessionID:   result.SessionID,
		Status:      result.Status.String(),
		RedirectURL: result.RedirectURL,
	})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrMissingSessionID):
		respondError(w, http.StatusBadRequest, "missing_session_id", err.Error())
	case errors.Is(err, checkout.ErrCartMismatch):
		respondError(w, http.StatusForbidden, "cart_mismatch", err.Error())
	case errors.Is(err, payment.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", "payment session not found")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "payment provider unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "payment provider timed out")
	default:
		respondError(w, http.StatusBadGateway, "payment_error", "payment provider error")
	}
}
