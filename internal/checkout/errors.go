package checkout

import "errors"

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrMissingSessionID = errors.New("payment session id is required")
	ErrCartMismatch     = errors.New("payment session belongs to another cart")
)
