// Package storetest opens throwaway sqlite stores for package tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"spicery-be/internal/config"
	"spicery-be/internal/db"
	"spicery-be/internal/schema"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Open returns a migrated, unseeded sqlite store in t's temp dir.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	database, err := db.NewDatabase(&config.Config{
		DBDriver: "sqlite",
		DBURL:    filepath.Join(t.TempDir(), "spice.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	initializer := schema.New(database)
	require.NoError(t, initializer.EnsureSchema(context.Background()))
	_, err = initializer.EnsureColumns(context.Background())
	require.NoError(t, err)

	return database
}
