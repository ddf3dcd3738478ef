package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"spicery-be/internal/db"
	"spicery-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	CreateReview(ctx context.Context, r Review) (*Product, error)
	ListReviews(ctx context.Context, productID string) ([]Review, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, category, price, stock, description, status, image, rating_avg, review_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.Stock,
		&p.Description,
		&p.Status,
		&p.Image,
		&p.RatingAvg,
		&p.ReviewCount,
	)
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	return getByID(ctx, r.db, id)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func getByID(ctx context.Context, q queryer, id string) (*Product, error) {
	row := q.QueryRowxContext(ctx, q.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO products (
			id, name, category, price, stock, description, status, image, rating_avg, review_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		p.ID,
		p.Name,
		p.Category,
		p.Price,
		p.Stock,
		p.Description,
		p.Status,
		p.Image,
		p.RatingAvg,
		p.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update overwrites the editable fields. Review aggregates are left alone.
func (r *repository) Update(ctx context.Context, p Product) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE products
		SET name = ?, category = ?, price = ?, stock = ?, description = ?, status = ?, image = ?
		WHERE id = ?
	`),
		p.Name,
		p.Category,
		p.Price,
		p.Stock,
		p.Description,
		p.Status,
		p.Image,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete does not touch order_items; their name and price snapshots outlive the product.
func (r *repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CreateReview stores the review and folds its rating into the product
// aggregates in one transaction. The aggregate update reads the current
// row values inside a single UPDATE, so concurrent reviews cannot overwrite
// each other's contribution.
func (r *repository) CreateReview(ctx context.Context, rv Review) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateReview"),
		zap.String("product_id", rv.ProductID),
	)

	var updated *Product
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
			UPDATE products
			SET rating_avg = (rating_avg * review_count + ?) / (review_count + 1),
			    review_count = review_count + 1
			WHERE id = ?
		`), float64(rv.Rating), rv.ProductID)
		if err != nil {
			return fmt.Errorf("update review aggregate: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("review aggregate rows affected: %w", err)
		}
		if affected == 0 {
			return ErrProductNotFound
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO reviews (id, product_id, user_email, rating, comment, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`), rv.ID, rv.ProductID, rv.UserEmail, rv.Rating, rv.Comment, rv.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}

		updated, err = getByID(ctx, tx, rv.ProductID)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Error("failed to record review", zap.Error(err))
		}
		return nil, err
	}

	log.Debug("review recorded",
		zap.Int("review_count", updated.ReviewCount),
		zap.Float64("rating_avg", updated.RatingAvg),
	)
	return updated, nil
}

func (r *repository) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	reviews := make([]Review, 0)
	err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(`
		SELECT id, product_id, user_email, rating, comment, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY created_at DESC, id DESC
	`), productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
