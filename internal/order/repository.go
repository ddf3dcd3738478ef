package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"spicery-be/internal/db"
	"spicery-be/internal/logger"
	"spicery-be/internal/utils"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, o Order) error
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const orderJoinQuery = `
	SELECT
		o.id, o.customer, o.email, o.whatsapp, o.address, o.display_date,
		o.amount, o.currency, o.status, o.created_at,
		i.id, i.product_id, i.name, i.quantity, i.price
	FROM orders o
	LEFT JOIN order_items i ON i.order_id = o.id
`

// List returns every order with its items, newest first. Orders without
// items come back with an empty Items slice.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	var (
		where []string
		args  []any
	)

	if email := strings.TrimSpace(filter.Email); email != "" {
		where = append(where, "LOWER(o.email) = LOWER(?)")
		args = append(args, email)
	}

	query := orderJoinQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.created_at DESC, o.id, i.line_no"

	return r.queryOrders(ctx, r.db.Rebind(query), args...)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	orders, err := r.queryOrders(ctx, r.db.Rebind(orderJoinQuery+" WHERE o.id = ? ORDER BY i.line_no"), id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return &orders[0], nil
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	index := make(map[string]int)

	for rows.Next() {
		var (
			o         Order
			itemID    sql.NullString
			productID sql.NullString
			itemName  sql.NullString
			quantity  sql.NullFloat64
			price     sql.NullFloat64
		)

		if err := rows.Scan(
			&o.ID,
			&o.Customer,
			&o.Email,
			&o.Whatsapp,
			&o.Address,
			&o.Date,
			&o.Amount,
			&o.Currency,
			&o.Status,
			&o.Timestamp,
			&itemID,
			&productID,
			&itemName,
			&quantity,
			&price,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		pos, seen := index[o.ID]
		if !seen {
			o.Items = make([]Item, 0)
			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}

		if !itemID.Valid {
			continue
		}

		item := Item{
			ID:       itemID.String,
			Name:     itemName.String,
			Quantity: quantity.Float64,
			Price:    price.Float64,
		}
		if productID.Valid {
			item.ProductID = utils.StrPtr(productID.String)
		}
		orders[pos].Items = append(orders[pos].Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// Create writes the header and all items in one transaction.
func (r *repository) Create(ctx context.Context, o Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
	)

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO orders (
				id, customer, email, whatsapp, address, display_date,
				amount, currency, status, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`),
			o.ID,
			o.Customer,
			o.Email,
			o.Whatsapp,
			o.Address,
			o.Date,
			o.Amount,
			o.Currency,
			o.Status,
			o.Timestamp,
		)
		if db.IsUniqueViolation(err) {
			return ErrOrderExists
		}
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
			INSERT INTO order_items (id, order_id, product_id, name, quantity, price, line_no)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return fmt.Errorf("prepare order item insert: %w", err)
		}
		defer stmt.Close()

		for i, it := range o.Items {
			if _, err := stmt.ExecContext(ctx, it.ID, o.ID, it.ProductID, it.Name, it.Quantity, it.Price, i); err != nil {
				return fmt.Errorf("insert order item %d: %w", i, err)
			}
		}
		return nil
	})
	if errors.Is(err, ErrOrderExists) {
		log.Debug("duplicate order id")
		return err
	}
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return err
	}

	log.Debug("order stored", zap.Int("items", len(o.Items)))
	return nil
}

// UpdateStatus moves the order from one status to another only if it is
// still in from. A lost race reports ErrStatusConflict.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ? AND status = ?`), to, id, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status rows affected: %w", err)
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}
