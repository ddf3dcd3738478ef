package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderExists       = errors.New("order already exists")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)
