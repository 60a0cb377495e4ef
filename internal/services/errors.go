package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP responses with
// a success flag and message instead of surfacing internals.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrItemUnavailable    = errors.New("food item is not available")
	ErrNotOwned           = errors.New("cart item does not belong to this cart")
	ErrInvalidTransition  = errors.New("illegal order status transition")
	ErrGateway            = errors.New("payment gateway error")
)
