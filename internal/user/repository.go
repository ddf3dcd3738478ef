package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"spicery-be/internal/db"
	"spicery-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES (:id, :name, :email, :password_hash, :role, :created_at)
	`, u)
	if db.IsUniqueViolation(err) {
		return ErrEmailExists
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail matches emails case-insensitively.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = ?
	`), strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *repository) CountByRole(ctx context.Context, role Role) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM users WHERE role = ?`), role); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
