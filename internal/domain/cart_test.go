package domain

import (
	"strings"
	"testing"

	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id, unit string, price, ceiling int64) models.CartLine {
	return models.CartLine{ProductID: id, Name: id, Unit: unit, Price: price, OriginalPrice: price, StockCeiling: ceiling}
}

func TestBill_AddLineMergesSameVariant(t *testing.T) {
	t.Parallel()

	var b Bill
	_, err := b.AddLine(snapshot("p1", "1kg", 80, 5))
	require.NoError(t, err)
	line, err := b.AddLine(snapshot("p1", "1kg", 80, 5))
	require.NoError(t, err)
	_, err = b.AddLine(snapshot("p1", "500g", 45, 5))
	require.NoError(t, err)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, "p1-1kg", line.Key)
	assert.EqualValues(t, 2, line.Quantity)
	assert.Equal(t, "p1-500g", b.Lines[1].Key)
}

func TestBill_AddLineStopsAtCeiling(t *testing.T) {
	t.Parallel()

	var b Bill
	for i := 0; i < 2; i++ {
		_, err := b.AddLine(snapshot("p1", "", 10, 2))
		require.NoError(t, err)
	}

	_, err := b.AddLine(snapshot("p1", "", 10, 2))
	require.ErrorIs(t, err, ErrStockLimit)
	assert.EqualValues(t, 2, b.Lines[0].Quantity)
}

func TestBill_AddLineOutOfStock(t *testing.T) {
	t.Parallel()

	var b Bill
	_, err := b.AddLine(snapshot("p1", "", 10, 0))
	require.ErrorIs(t, err, ErrStockLimit)
	assert.Empty(t, b.Lines)
}

func TestBill_SetQuantity(t *testing.T) {
	t.Parallel()

	var b Bill
	_, err := b.AddLine(snapshot("p1", "", 10, 3))
	require.NoError(t, err)

	assert.ErrorIs(t, b.SetQuantity("p1", 0), ErrQuantityOutOfRange)
	assert.ErrorIs(t, b.SetQuantity("p1", 4), ErrQuantityOutOfRange)
	assert.EqualValues(t, 1, b.Lines[0].Quantity)

	require.NoError(t, b.SetQuantity("p1", 3))
	assert.EqualValues(t, 3, b.Lines[0].Quantity)

	require.NoError(t, b.SetQuantity("p1", 3))
	assert.EqualValues(t, 3, b.Lines[0].Quantity)

	assert.ErrorIs(t, b.SetQuantity("missing", 1), ErrValidation)
}

func TestBill_RemoveLineIsIdempotent(t *testing.T) {
	t.Parallel()

	var b Bill
	_, err := b.AddLine(snapshot("p1", "", 10, 3))
	require.NoError(t, err)

	assert.True(t, b.RemoveLine("p1"))
	assert.False(t, b.RemoveLine("p1"))
	assert.False(t, b.RemoveLine("never-there"))
	assert.Empty(t, b.Lines)
}

func TestShippingPolicy(t *testing.T) {
	t.Parallel()

	policy := ShippingPolicy{FreeThreshold: 499, Fee: 40}
	assert.EqualValues(t, 40, policy.Cost(450))
	assert.EqualValues(t, 40, policy.Cost(498))
	assert.EqualValues(t, 0, policy.Cost(499))
	assert.EqualValues(t, 0, policy.Cost(500))
	assert.EqualValues(t, 0, policy.Cost(0))

	assert.EqualValues(t, 0, ShippingPolicy{}.Cost(10))
}

func TestBill_Totals(t *testing.T) {
	t.Parallel()

	var b Bill
	b.Lines = models.CartLines{
		{Key: "a", Price: 150, Quantity: 2, StockCeiling: 5},
		{Key: "b", Price: 50, Quantity: 3, StockCeiling: 5},
	}
	policy := ShippingPolicy{FreeThreshold: 499, Fee: 40}

	plain := b.Totals(policy, Adjustments{})
	assert.EqualValues(t, 450, plain.Subtotal)
	assert.EqualValues(t, 40, plain.ShippingCost)
	assert.EqualValues(t, 490, plain.Total)

	b.Lines[1].Quantity = 4
	free := b.Totals(policy, Adjustments{})
	assert.EqualValues(t, 500, free.Subtotal)
	assert.EqualValues(t, 0, free.ShippingCost)
	assert.EqualValues(t, 500, free.Total)

	pos := b.Totals(ShippingPolicy{}, Adjustments{DiscountCode: "MANUAL", DiscountPercent: 10, TaxRate: 18})
	assert.EqualValues(t, 50, pos.DiscountAmount)
	assert.EqualValues(t, 81, pos.TaxAmount)
	assert.EqualValues(t, 0, pos.ShippingCost)
	assert.EqualValues(t, 531, pos.Total)
}

func TestBill_TotalsWithCoupon(t *testing.T) {
	t.Parallel()

	b := Bill{Lines: models.CartLines{{Key: "a", Price: 100, Quantity: 2, StockCeiling: 2}}}
	totals := b.Totals(ShippingPolicy{FreeThreshold: 499, Fee: 40}, Adjustments{DiscountCode: "SALE10", DiscountPercent: 10})

	assert.EqualValues(t, 200, totals.Subtotal)
	assert.EqualValues(t, 20, totals.DiscountAmount)
	assert.EqualValues(t, 40, totals.ShippingCost)
	assert.EqualValues(t, 220, totals.Total)
}

func TestBill_Items(t *testing.T) {
	t.Parallel()

	b := Bill{Lines: models.CartLines{{Key: "p-1kg", ProductID: "p", Name: "Rice", Unit: "1kg", Price: 80, OriginalPrice: 100, Quantity: 3}}}
	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.OrderItem{ProductID: "p", Name: "Rice", Unit: "1kg", Price: 80, OriginalPrice: 100, Quantity: 3}, items[0])
}

func TestNewReadableID(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := NewReadableID()
		require.NoError(t, err)
		require.Len(t, id, 7)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(readableAlphabet, r), "unexpected rune %q", r)
		}
		seen[id] = true
	}
	assert.Greater(t, len(seen), 45)
}
