package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func TestReportService_Build(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	rs := &ReportService{Repo: e.repo}

	p := e.product(t, models.Product{Name: "Soap", Price: 30, StockQuantity: 3})
	_, err := e.orders.Submit(ctx, CheckoutInput{UserID: "u1", Lines: models.CartLines{line(p, "", 30, 1)}, Shipping: homeAddress()})
	require.NoError(t, err)

	sales, err := rs.Build(ctx, ReportSales)
	require.NoError(t, err)
	require.Len(t, sales.Rows, 1)
	assert.Equal(t, "Asha", sales.Rows[0][2])

	inv, err := rs.Build(ctx, ReportInventory)
	require.NoError(t, err)
	require.Len(t, inv.Rows, 1)
	assert.Equal(t, "Low Stock", inv.Rows[0][5])

	_, err = rs.Build(ctx, "profits")
	assert.ErrorIs(t, err, ErrValidation)
}
