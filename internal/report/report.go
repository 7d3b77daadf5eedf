// Package report builds the back-office exports (sales, inventory,
// customers) and writes them as CSV or XLSX.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/nk_store/internal/models"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	lowStockBelow = 5
)

// Table is a rectangular export. Cells hold string or int64 values.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

func Sales(orders []models.Order) Table {
	t := Table{
		Name:    "Sales_Report",
		Headers: []string{"OrderID", "Date", "CustomerName", "CustomerPhone", "Amount", "Status", "Payment", "ItemCount", "ItemsSummary"},
	}
	for _, o := range orders {
		name := o.Shipping.FullName
		if name == "" {
			name = "Guest"
		}
		date := "N/A"
		if !o.CreatedAt.IsZero() {
			date = o.CreatedAt.Format(time.DateOnly)
		}
		parts := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			label := it.Name
			if it.Unit != "" {
				label += " " + it.Unit
			}
			parts = append(parts, fmt.Sprintf("%s (x%d)", label, it.Quantity))
		}
		t.Rows = append(t.Rows, []any{
			o.ID, date, name, o.UserPhone, o.TotalAmount, string(o.Status), o.PaymentMode,
			int64(len(o.Items)), strings.Join(parts, " | "),
		})
	}
	return t
}

func Inventory(products []models.Product) Table {
	t := Table{
		Name:    "Inventory_Sheet",
		Headers: []string{"ProductID", "Name", "Category", "Price", "StockQuantity", "Status", "SoldLifetime"},
	}
	for _, p := range products {
		status := "In Stock"
		if p.StockQuantity < lowStockBelow {
			status = "Low Stock"
		}
		t.Rows = append(t.Rows, []any{p.ID, p.Name, p.Category, p.Price, p.StockQuantity, status, p.SoldCount})
	}
	return t
}

func Customers(users []models.User) Table {
	t := Table{
		Name:    "Customer_List",
		Headers: []string{"UID", "Name", "Phone", "Email", "City", "RegisteredAddresses"},
	}
	for _, u := range users {
		t.Rows = append(t.Rows, []any{u.ID, u.DisplayName, u.Phone, dash(u.Email), dash(u.City), int64(len(u.Addresses))})
	}
	return t
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Filename is the download name of t on the given day.
func Filename(t Table, format string, day time.Time) string {
	return fmt.Sprintf("%s_%s.%s", t.Name, day.Format(time.DateOnly), format)
}

func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
