package schema

import (
	"context"
	"fmt"

	"spicery-be/internal/db"
	"spicery-be/internal/logger"
	"spicery-be/internal/product"
	"spicery-be/internal/utils"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Initializer brings the store to the expected shape at startup.
type Initializer struct {
	db       *sqlx.DB
	dialect  db.Dialect
	products product.Repository
}

func New(database *sqlx.DB) *Initializer {
	return &Initializer{
		db:       database,
		dialect:  db.DialectOf(database),
		products: product.NewRepository(database),
	}
}

// Run creates missing tables, adds missing columns and seeds an empty
// catalog. The first failing step stops the run and its error is returned;
// callers are expected to refuse to serve traffic in that case.
func (i *Initializer) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("component", "schema"))

	if err := i.EnsureSchema(ctx); err != nil {
		log.Error("ensure schema failed", zap.Error(err))
		return err
	}

	added, err := i.EnsureColumns(ctx)
	if err != nil {
		log.Error("ensure columns failed", zap.Error(err))
		return err
	}

	seeded, err := i.SeedIfEmpty(ctx)
	if err != nil {
		log.Error("seed failed", zap.Error(err))
		return err
	}

	log.Info("schema ready",
		zap.Strings("columns_added", added),
		zap.Int("products_seeded", seeded),
	)
	return nil
}

func (i *Initializer) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createStatements {
		if _, err := i.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// EnsureColumns adds every required column a table lacks and returns the
// added columns as "table.column".
func (i *Initializer) EnsureColumns(ctx context.Context) ([]string, error) {
	var added []string

	for _, tc := range requiredColumns {
		existing, err := i.Columns(ctx, tc.Table)
		if err != nil {
			return added, err
		}

		have := make(map[string]bool, len(existing))
		for _, c := range existing {
			have[c] = true
		}

		for _, col := range tc.Columns {
			if have[col.Name] {
				continue
			}

			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", tc.Table, col.Name, col.Definition)
			if _, err := i.db.ExecContext(ctx, stmt); err != nil {
				return added, fmt.Errorf("failed to add column %s.%s: %w", tc.Table, col.Name, err)
			}
			added = append(added, tc.Table+"."+col.Name)
		}
	}

	return added, nil
}

// Columns lists the current column names of table.
func (i *Initializer) Columns(ctx context.Context, table string) ([]string, error) {
	var cols []string
	if err := i.db.SelectContext(ctx, &cols, i.db.Rebind(db.ColumnsQuery(i.dialect)), table); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	return cols, nil
}

// SeedIfEmpty inserts the demo catalog only when the products table has no
// rows, and returns how many products it inserted.
func (i *Initializer) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := i.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for idx, sp := range demoCatalog {
		p := product.Product{
			ID:          utils.NewID(utils.PrefixProduct),
			Name:        sp.Name,
			Category:    sp.Category,
			Price:       sp.Price,
			Stock:       sp.Stock,
			Description: descriptionPtr(sp.Description),
			Status:      product.StatusFor(sp.Stock),
		}
		if err := i.products.Create(ctx, p); err != nil {
			return idx, fmt.Errorf("failed to seed %q: %w", sp.Name, err)
		}
	}

	return len(demoCatalog), nil
}

func firstLine(stmt string) string {
	for i, r := range stmt {
		if r == '\n' || r == '(' {
			return stmt[:i]
		}
	}
	return stmt
}
