//go:build integration

package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"spicery-be/internal/config"
	"spicery-be/internal/db"
	"spicery-be/internal/events"
	"spicery-be/internal/order"
	"spicery-be/internal/product"
	"spicery-be/internal/schema"
	"spicery-be/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("spice"),
		postgres.WithUsername("spice"),
		postgres.WithPassword("spice"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestPostgres_BothDrivers(t *testing.T) {
	connStr := startPostgres(t)
	ctx := context.Background()

	// Both drivers share one database, so the second pass also checks
	// that Run is idempotent and does not reseed.
	for _, driver := range []string{"postgres", "pgx"} {
		t.Run(driver, func(t *testing.T) {
			database, err := db.NewDatabase(&config.Config{DBDriver: driver, DBURL: connStr})
			require.NoError(t, err)
			defer database.Close()

			require.NoError(t, schema.New(database).Run(ctx))

			products, err := product.NewRepository(database).List(ctx)
			require.NoError(t, err)
			assert.Len(t, products, 5)

			reviewed, err := product.NewService(product.NewRepository(database)).
				RecordReview(ctx, products[0].ID, product.ReviewInput{UserEmail: driver + "@example.com", Rating: 4})
			require.NoError(t, err)
			assert.Positive(t, reviewed.ReviewCount)

			orders := order.NewService(order.NewRepository(database), events.Nop{})
			created, err := orders.Create(ctx, order.CreateInput{
				Customer: "Nimal",
				Email:    "Nimal@Example.com",
				Address:  "Kandy",
				Total:    "LKR 2,500",
				Items:    []order.ItemInput{{Name: "Pepper", Quantity: 2, Price: 1250}},
			})
			require.NoError(t, err)

			listed, err := orders.List(ctx, order.ListFilter{Email: "nimal@example.com"})
			require.NoError(t, err)
			require.NotEmpty(t, listed)
			assert.Equal(t, created.ID, listed[0].ID)
			assert.Len(t, listed[0].Items, 1)
			assert.True(t, listed[0].Amount.Equal(decimal.NewFromInt(2500)), listed[0].Amount.String())

			_, err = orders.UpdateStatus(ctx, created.ID, order.StatusProcessing)
			require.NoError(t, err)
			_, err = orders.UpdateStatus(ctx, created.ID, order.StatusDelivered)
			assert.ErrorIs(t, err, order.ErrInvalidTransition)

			users := user.NewRepository(database)
			u := user.User{ID: "USR-" + driver, Name: "Kamal", Email: "kamal@example.com", PasswordHash: "x", Role: user.RoleCustomer}
			err = users.Create(ctx, u)
			if driver == "postgres" {
				require.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, user.ErrEmailExists), err)
			}
		})
	}
}
