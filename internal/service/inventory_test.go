package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/models"
)

func TestReconciler_ApplyVariantRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	p := e.product(t, riceWithSizes())

	_, err := e.recon.Apply(ctx, LineAdjustment{ProductID: p.ID, Unit: "1kg", Quantity: 3, Direction: domain.Decrement})
	require.NoError(t, err)

	got := e.reload(t, p.ID)
	assert.EqualValues(t, 7, got.Variants[0].Stock)
	assert.EqualValues(t, 12, got.StockQuantity)
	assert.EqualValues(t, 3, got.SoldCount)

	_, err = e.recon.Apply(ctx, LineAdjustment{ProductID: p.ID, Unit: "1kg", Quantity: 3, Direction: domain.Increment})
	require.NoError(t, err)

	got = e.reload(t, p.ID)
	assert.EqualValues(t, 10, got.Variants[0].Stock)
	assert.EqualValues(t, 15, got.StockQuantity)
	assert.EqualValues(t, 0, got.SoldCount)
}

func TestReconciler_ApplyErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	p := e.product(t, riceWithSizes())

	_, err := e.recon.Apply(ctx, LineAdjustment{ProductID: p.ID, Unit: "500g", Quantity: 6, Direction: domain.Decrement})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = e.recon.Apply(ctx, LineAdjustment{ProductID: p.ID, Unit: "5kg", Quantity: 1, Direction: domain.Decrement})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.recon.Apply(ctx, LineAdjustment{ProductID: "missing", Quantity: 1, Direction: domain.Decrement})
	assert.ErrorIs(t, err, ErrNotFound)

	got := e.reload(t, p.ID)
	assert.EqualValues(t, 15, got.StockQuantity)
}

func TestReconciler_ConcurrentDecrementsNeverOversell(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	p := e.product(t, models.Product{Name: "Soap", Price: 30, StockQuantity: 5})

	const buyers = 8
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.recon.Apply(ctx, LineAdjustment{ProductID: p.ID, Quantity: 1, Direction: domain.Decrement})
		}(i)
	}
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrInsufficientStock):
			short++
		}
	}
	assert.Equal(t, 5, ok)
	assert.Equal(t, 3, short)

	got := e.reload(t, p.ID)
	assert.EqualValues(t, 0, got.StockQuantity)
	assert.EqualValues(t, 5, got.SoldCount)
}

func TestReconcileOrder_SameProductTwoSizes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	p := e.product(t, riceWithSizes())

	items := models.OrderItems{
		{ProductID: p.ID, Unit: "1kg", Quantity: 2},
		{ProductID: p.ID, Unit: "500g", Quantity: 5},
		{ProductID: p.ID, Unit: "1kg", Quantity: 1},
	}
	results := e.recon.ReconcileOrder(ctx, "ORDER01", items, domain.Decrement)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.OK(), r.Error)
	}
	assert.Equal(t, models.ReconcileDone, Outcome(results))

	got := e.reload(t, p.ID)
	assert.EqualValues(t, 7, got.Variants[0].Stock)
	assert.EqualValues(t, 0, got.Variants[1].Stock)
	assert.EqualValues(t, 7, got.StockQuantity)
	assert.EqualValues(t, 8, got.SoldCount)

	ms, err := e.repo.ListMovements(ctx, "ORDER01")
	require.NoError(t, err)
	require.Len(t, ms, 3)
	for _, m := range ms {
		assert.Less(t, m.Delta, int64(0))
		assert.Equal(t, models.MovementApplied, m.Status)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	ok := LineResult{}
	bad := LineResult{Err: ErrInsufficientStock}

	assert.Equal(t, models.ReconcileDone, Outcome([]LineResult{ok, ok}))
	assert.Equal(t, models.ReconcilePartiallyFulfilled, Outcome([]LineResult{ok, bad}))
	assert.Equal(t, models.ReconcileNeedsReview, Outcome([]LineResult{bad, bad}))
}
