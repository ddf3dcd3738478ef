package product

import (
	"context"
	"errors"
	"testing"

	"spicery-be/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{
	"id", "name", "category", "price", "stock", "description", "status", "image", "rating_avg", "review_count",
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows(productRowColumns).
			AddRow("PRD-1", "Cinnamon", "Bark", 2450.0, 48.0, "Quills", "In Stock", nil, 4.5, 2).
			AddRow("PRD-2", "Cloves", "Buds", 3100.0, 0.0, nil, "Out of Stock", nil, 0.0, 0)

		mock.ExpectQuery(`SELECT .* FROM products ORDER BY name, id`).WillReturnRows(rows)

		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Cinnamon", products[0].Name)
		assert.Equal(t, utils.StrPtr("Quills"), products[0].Description)
		assert.Equal(t, StatusOutOfStock, products[1].Status)
		assert.Nil(t, products[1].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty returns empty slice", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .* FROM products`).WillReturnRows(sqlmock.NewRows(productRowColumns))

		products, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("QueryError", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .* FROM products`).WillReturnError(errors.New("db down"))

		_, err := repo.List(ctx)
		assert.ErrorContains(t, err, "query products")
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \?`).
			WithArgs("PRD-1").
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow("PRD-1", "Cardamom", "Pods", 5200.0, 7.0, nil, "Low Stock", "data:image/png;base64,AA", 0.0, 0))

		p, err := repo.GetByID(ctx, "PRD-1")
		require.NoError(t, err)
		assert.Equal(t, StatusLowStock, p.Status)
		assert.Equal(t, utils.StrPtr("data:image/png;base64,AA"), p.Image)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \?`).
			WithArgs("PRD-X").
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		_, err := repo.GetByID(ctx, "PRD-X")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	p := Product{ID: "PRD-1", Name: "Pepper", Category: "Seeds", Price: 1800, Stock: 3, Status: StatusLowStock}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE products`).
			WithArgs("Pepper", "Seeds", 1800.0, 3.0, nil, StatusLowStock, nil, "PRD-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoRows", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE products`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, p), ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM products WHERE id = \?`).
		WithArgs("PRD-GONE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "PRD-GONE"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateReview(t *testing.T) {
	ctx := context.Background()
	rv := Review{ID: "REV-1", ProductID: "PRD-1", UserEmail: "a@b.lk", Rating: 5, CreatedAt: 1700000000000}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products\s+SET rating_avg`).
			WithArgs(5.0, "PRD-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO reviews`).
			WithArgs("REV-1", "PRD-1", "a@b.lk", 5, nil, int64(1700000000000)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \?`).
			WithArgs("PRD-1").
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow("PRD-1", "Cinnamon", "Bark", 2450.0, 48.0, nil, "In Stock", nil, 5.0, 1))
		mock.ExpectCommit()

		p, err := repo.CreateReview(ctx, rv)
		require.NoError(t, err)
		assert.Equal(t, 1, p.ReviewCount)
		assert.Equal(t, 5.0, p.RatingAvg)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown product rolls back", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products\s+SET rating_avg`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.CreateReview(ctx, rv)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ListReviews(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, product_id, user_email, rating, comment, created_at\s+FROM reviews`).
		WithArgs("PRD-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "user_email", "rating", "comment", "created_at"}).
			AddRow("REV-2", "PRD-1", "b@b.lk", 3, "ok", int64(2)).
			AddRow("REV-1", "PRD-1", "a@b.lk", 5, nil, int64(1)))

	reviews, err := repo.ListReviews(context.Background(), "PRD-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, utils.StrPtr("ok"), reviews[0].Comment)
	assert.Nil(t, reviews[1].Comment)
}
