package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"spicery-be/internal/config"
	"spicery-be/internal/db"
	"spicery-be/internal/events"
	"spicery-be/internal/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	cfg := &config.Config{
		DBDriver:    "sqlite",
		DBURL:       filepath.Join(t.TempDir(), "spice.db"),
		CORSOrigins: "*",
	}
	database, err := db.NewDatabase(cfg)
	require.NoError(t, err)
	defer database.Close()

	limiter := middleware.NewLimiter()
	defer limiter.Stop()

	router, err := newServer(cfg, database, events.Nop{}, limiter)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", filepath.Join(t.TempDir(), "spice.db"))

	t.Run("Serves after schema is ready", func(t *testing.T) {
		initDBFunc = db.NewDatabase

		var served bool
		startServerFunc = func(ctx context.Context, srv *http.Server) error {
			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "Ceylon Cinnamon")
			served = true
			return nil
		}

		assert.NoError(t, run())
		assert.True(t, served)
	})

	t.Run("Schema failure stops startup", func(t *testing.T) {
		initDBFunc = func(cfg *config.Config) (*sqlx.DB, error) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			mock.ExpectExec(`CREATE TABLE IF NOT EXISTS products`).WillReturnError(errors.New("disk full"))
			return sqlx.NewDb(mockDB, "sqlmock"), nil
		}

		startServerFunc = func(ctx context.Context, srv *http.Server) error {
			t.Fatal("server must not start when the schema cannot be ensured")
			return nil
		}

		assert.ErrorContains(t, run(), "disk full")
	})

	t.Run("DB failure", func(t *testing.T) {
		initDBFunc = func(cfg *config.Config) (*sqlx.DB, error) {
			return nil, errors.New("failed to connect to DB")
		}

		assert.ErrorContains(t, run(), "failed to connect to DB")
	})
}

func TestEphemeralSecret(t *testing.T) {
	a, b := ephemeralSecret(), ephemeralSecret()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
