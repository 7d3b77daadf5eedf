package domain

import (
	"testing"

	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    int64
		discount int64
		want     int64
	}{
		{name: "twenty percent off hundred", price: 100, discount: 20, want: 80},
		{name: "no discount", price: 250, discount: 0, want: 250},
		{name: "full discount", price: 250, discount: 100, want: 0},
		{name: "rounds down below half", price: 99, discount: 15, want: 84},
		{name: "rounds half up", price: 10, discount: 25, want: 8},
		{name: "zero price", price: 0, discount: 50, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EffectivePrice(tt.price, tt.discount))
		})
	}
}

func TestPercentOf(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 20, PercentOf(200, 10))
	assert.EqualValues(t, 0, PercentOf(0, 10))
	assert.EqualValues(t, 5, PercentOf(45, 11))
	assert.EqualValues(t, 3, PercentOf(25, 10))
}

func TestDisplayPrice_PicksCheapestEffectiveVariant(t *testing.T) {
	t.Parallel()

	p := &models.Product{Variants: models.Variants{
		{Unit: "1kg", Price: 200, Discount: 0, Stock: 3},
		{Unit: "500g", Price: 120, Discount: 25, Stock: 3},
		{Unit: "250g", Price: 95, Discount: 0, Stock: 3},
	}}

	tag := DisplayPrice(p)
	assert.EqualValues(t, 90, tag.Price)
	assert.EqualValues(t, 120, tag.Original)
	assert.EqualValues(t, 25, tag.Discount)
}

func TestDisplayPrice_NoStrikeThroughWithoutDiscount(t *testing.T) {
	t.Parallel()

	p := &models.Product{Variants: models.Variants{
		{Unit: "1kg", Price: 200, Discount: 50},
		{Unit: "250g", Price: 60},
	}}

	tag := DisplayPrice(p)
	assert.EqualValues(t, 60, tag.Price)
	assert.Zero(t, tag.Original)
	assert.Zero(t, tag.Discount)
}

func TestDisplayPrice_FlatProduct(t *testing.T) {
	t.Parallel()

	tag := DisplayPrice(&models.Product{Price: 75, StockQuantity: 4})
	assert.Equal(t, PriceTag{Price: 75}, tag)
}

func TestNormalizeProduct_DerivesStockAndPrice(t *testing.T) {
	t.Parallel()

	p := &models.Product{
		Name:          "Turmeric",
		Price:         1,
		StockQuantity: 999,
		Variants: models.Variants{
			{Unit: "1kg", Price: 100, Discount: 20, Stock: 10},
			{Unit: "500g", Price: 60, Discount: 0, Stock: 5},
		},
	}

	require.NoError(t, NormalizeProduct(p))
	assert.EqualValues(t, 15, p.StockQuantity)
	assert.EqualValues(t, 60, p.Price)
}

func TestNormalizeProduct_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		product models.Product
	}{
		{name: "missing name", product: models.Product{Price: 1}},
		{name: "negative flat price", product: models.Product{Name: "x", Price: -1}},
		{name: "negative flat stock", product: models.Product{Name: "x", StockQuantity: -1}},
		{name: "discount above hundred", product: models.Product{Name: "x", Variants: models.Variants{{Unit: "1kg", Price: 10, Discount: 101}}}},
		{name: "negative discount", product: models.Product{Name: "x", Variants: models.Variants{{Unit: "1kg", Price: 10, Discount: -5}}}},
		{name: "negative variant price", product: models.Product{Name: "x", Variants: models.Variants{{Unit: "1kg", Price: -10}}}},
		{name: "negative variant stock", product: models.Product{Name: "x", Variants: models.Variants{{Unit: "1kg", Price: 10, Stock: -1}}}},
		{name: "empty unit", product: models.Product{Name: "x", Variants: models.Variants{{Price: 10}}}},
		{name: "duplicate unit", product: models.Product{Name: "x", Variants: models.Variants{{Unit: "1kg", Price: 10}, {Unit: "1kg", Price: 12}}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := tt.product
			assert.ErrorIs(t, NormalizeProduct(&p), ErrValidation)
		})
	}
}
