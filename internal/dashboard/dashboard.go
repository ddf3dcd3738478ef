package dashboard

import (
	"context"
	"fmt"

	"spicery-be/internal/logger"
	"spicery-be/internal/metrics"
	"spicery-be/internal/order"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Summary is the owner dashboard headline. Revenue sums order amounts of
// every order that is not cancelled.
type Summary struct {
	Revenue        float64 `json:"revenue"`
	RevenueDisplay string  `json:"revenueDisplay"`
	Suppliers      int     `json:"suppliers"`
	Products       int     `json:"products"`
	PendingOrders  int     `json:"pendingOrders"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) Service {
	return &service{db: db}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary

	timer := metrics.StartTimer("dashboard", "summary")
	revenue, err := s.summarize(ctx, &sum)
	timer.Done(err)

	if err != nil {
		logger.FromCtx(ctx).Error("failed to build dashboard summary", zap.Error(err))
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	sum.Revenue = revenue.InexactFloat64()
	sum.RevenueDisplay = order.FormatTotal(revenue, order.DefaultCurrency)
	return &sum, nil
}

// summarize fills the counts and returns revenue. Amounts are stored as
// decimal strings and summed here rather than with SQL SUM, which would go
// through floating point on SQLite.
func (s *service) summarize(ctx context.Context, sum *Summary) (decimal.Decimal, error) {
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders WHERE status = ?)
	`), order.StatusPending).Scan(&sum.Suppliers, &sum.Products, &sum.PendingOrders)
	if err != nil {
		return decimal.Zero, err
	}

	var amounts []decimal.Decimal
	err = s.db.SelectContext(ctx, &amounts, s.db.Rebind(`SELECT amount FROM orders WHERE status <> ?`), order.StatusCancelled)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
