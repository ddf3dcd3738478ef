package db

import (
	"context"
	"fmt"
	"strings"

	"spicery-be/internal/config"
	"spicery-be/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are applied to every SQLite connection.
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
}

// NewDatabase opens the configured store and verifies it answers a ping.
func NewDatabase(cfg *config.Config) (*sqlx.DB, error) {
	return newDatabaseWithDriver(cfg, cfg.DBDriver)
}

func newDatabaseWithDriver(cfg *config.Config, driver string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, buildDSN(driver, cfg.DBURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// serialises statements and transactions instead of failing with SQLITE_BUSY.
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.L().Info("database connection established",
		zap.String("driver", driver),
		zap.String("dialect", string(DialectOf(db))),
	)
	return db, nil
}

func buildDSN(driver, url string) string {
	if driver != "sqlite" || url == ":memory:" {
		return url
	}

	dsn := url
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range sqlitePragmas {
		dsn += sep + "_pragma=" + p
		sep = "&"
	}
	return dsn
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	log := logger.FromCtx(ctx)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
