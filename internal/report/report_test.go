package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func TestEscapeCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "plain", want: "plain"},
		{in: "", want: ""},
		{in: "a,b", want: `"a,b"`},
		{in: `say "hi"`, want: `"say ""hi"""`},
		{in: "two\nlines", want: "\"two\nlines\""},
		{in: " leading space", want: " leading space"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeCSV(tt.in), tt.in)
	}
}

func TestWriteCSV_Sales(t *testing.T) {
	t.Parallel()

	orders := []models.Order{{
		ID:          "ABC2345",
		UserPhone:   "98400",
		Shipping:    models.Address{FullName: "Ravi, K"},
		Items:       models.OrderItems{{Name: "Rice", Unit: "1kg", Quantity: 2}, {Name: "Soap", Quantity: 1}},
		TotalAmount: 250,
		Status:      models.OrderStatusPending,
		PaymentMode: "COD",
		CreatedAt:   time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	}, {
		ID:     "XYZ2345",
		Status: models.OrderStatusDelivered,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Sales(orders)))

	want := "OrderID,Date,CustomerName,CustomerPhone,Amount,Status,Payment,ItemCount,ItemsSummary\n" +
		`ABC2345,2026-03-04,"Ravi, K",98400,250,Pending,COD,2,Rice 1kg (x2) | Soap (x1)` + "\n" +
		"XYZ2345,N/A,Guest,,0,Delivered,,0,"
	assert.Equal(t, want, buf.String())
}

func TestInventoryStatus(t *testing.T) {
	t.Parallel()

	tbl := Inventory([]models.Product{
		{ID: "a", Name: "A", StockQuantity: 4, SoldCount: 1},
		{ID: "b", Name: "B", StockQuantity: 5},
	})
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Low Stock", tbl.Rows[0][5])
	assert.Equal(t, "In Stock", tbl.Rows[1][5])
}

func TestCustomers(t *testing.T) {
	t.Parallel()

	tbl := Customers([]models.User{{ID: "u1", DisplayName: "Asha", Addresses: models.Addresses{{}, {}}}})
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []any{"u1", "Asha", "", "-", "-", int64(2)}, tbl.Rows[0])
}

func TestWriteXLSX_ReadBack(t *testing.T) {
	t.Parallel()

	tbl := Inventory([]models.Product{{ID: "p1", Name: "Rice", Category: "grains", Price: 80, StockQuantity: 12, SoldCount: 3}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, FormatXLSX))

	file, err := xlsx.OpenReaderAt(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Inventory_Sheet", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "ProductID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Rice", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "12", sheet.Rows[1].Cells[4].Value)
	assert.Equal(t, "In Stock", sheet.Rows[1].Cells[5].Value)
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Table{}, "pdf"))
}

func TestFilename(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Customer_List_2026-10-19.csv", Filename(Customers(nil), FormatCSV, day))
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(FormatCSV))
}
