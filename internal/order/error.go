package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderFinal    = errors.New("order is in a terminal status")
	ErrEmptyOrder    = errors.New("order has no items")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidStatus = errors.New("invalid order status")
)
