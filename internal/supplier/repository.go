package supplier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	List(ctx context.Context) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (*Supplier, error)
	Create(ctx context.Context, s Supplier) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const supplierColumns = `id, name, email, phone, whatsapp, category, status, rating, total_orders, message, created_at`

func (r *repository) List(ctx context.Context) ([]Supplier, error) {
	suppliers := make([]Supplier, 0)
	if err := r.db.SelectContext(ctx, &suppliers, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Supplier, error) {
	var s Supplier
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`SELECT `+supplierColumns+` FROM suppliers WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s Supplier) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES (:id, :name, :email, :phone, :whatsapp, :category, :status, :rating, :total_orders, :message, :created_at)
	`, s)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE suppliers SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return fmt.Errorf("update supplier status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update supplier status rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
