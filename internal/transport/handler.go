package transport

import (
	"context"

	"spicery-be/internal/dashboard"
	"spicery-be/internal/order"
	"spicery-be/internal/product"
	"spicery-be/internal/supplier"
	"spicery-be/internal/user"
	"spicery-be/internal/validate"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds the services behind the REST routes.
type Handler struct {
	Products  product.Service
	Orders    order.Service
	Suppliers supplier.Service
	Users     user.Service
	Dashboard dashboard.Service
	Validator *validate.Validator
	DB        pinger
}
