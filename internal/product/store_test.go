package product_test

import (
	"context"
	"sync"
	"testing"

	"spicery-be/internal/product"
	"spicery-be/internal/storetest"
	"spicery-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := product.NewService(product.NewRepository(storetest.Open(t)))

	created, err := svc.Create(ctx, product.Input{
		Name:        "Ceylon Cinnamon",
		Category:    "Bark",
		Price:       2450,
		Stock:       11,
		Description: utils.StrPtr("Quills"),
		Image:       utils.StrPtr("data:image/jpeg;base64,/9j/4AAQ"),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, product.StatusInStock, got.Status)

	updated, err := svc.Update(ctx, created.ID, product.Input{Name: "Ceylon Cinnamon", Category: "Bark", Price: 2500, Stock: 10})
	require.NoError(t, err)
	assert.Equal(t, product.StatusLowStock, updated.Status)
	assert.Nil(t, updated.Description)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2500.0, list[0].Price)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestStore_ConcurrentReviews(t *testing.T) {
	ctx := context.Background()
	svc := product.NewService(product.NewRepository(storetest.Open(t)))

	p, err := svc.Create(ctx, product.Input{Name: "Cardamom", Stock: 7})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, rating := range []int{5, 3} {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, err := svc.RecordReview(ctx, p.ID, product.ReviewInput{UserEmail: "buyer@spice.lk", Rating: rating})
			errs <- err
		}(rating)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewCount)
	assert.InDelta(t, 4.0, got.RatingAvg, 1e-9)

	reviews, err := svc.ListReviews(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestStore_ReviewUnknownProduct(t *testing.T) {
	svc := product.NewService(product.NewRepository(storetest.Open(t)))

	_, err := svc.RecordReview(context.Background(), "PRD-MISSING", product.ReviewInput{UserEmail: "a@b.lk", Rating: 4})
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}
