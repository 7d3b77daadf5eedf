package report

import (
	"sort"
	"time"

	"github.com/Skotchmaster/nk_store/internal/models"
)

const (
	chartDays   = 7
	topProducts = 5
)

type DaySales struct {
	Day   string `json:"day"`
	Sales int64  `json:"sales"`
}

type ProductSales struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SoldCount int64  `json:"sold_count"`
}

type StockLevel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int64  `json:"stock_quantity"`
}

// Stats is the back-office overview. Revenue counts delivered orders only;
// the daily chart counts every order that was not cancelled.
type Stats struct {
	TotalRevenue  int64          `json:"total_revenue"`
	TodayRevenue  int64          `json:"today"`
	MonthRevenue  int64          `json:"month"`
	PendingOrders int64          `json:"pending"`
	Products      int64          `json:"products"`
	LastWeek      []DaySales     `json:"chart"`
	TopProducts   []ProductSales `json:"top_products"`
	LowStock      []StockLevel   `json:"low_stock"`
}

// Dashboard summarises orders and products as seen at now, in now's location.
func Dashboard(orders []models.Order, products []models.Product, now time.Time) Stats {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	chartStart := today.AddDate(0, 0, -(chartDays - 1))

	st := Stats{
		Products:    int64(len(products)),
		LastWeek:    make([]DaySales, chartDays),
		TopProducts: []ProductSales{},
		LowStock:    []StockLevel{},
	}
	for i := range st.LastWeek {
		st.LastWeek[i].Day = chartStart.AddDate(0, 0, i).Format(time.DateOnly)
	}

	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		placed := o.CreatedAt.In(loc)
		switch o.Status {
		case models.OrderStatusDelivered:
			st.TotalRevenue += o.TotalAmount
			if !placed.Before(today) {
				st.TodayRevenue += o.TotalAmount
			}
			if !placed.Before(monthStart) {
				st.MonthRevenue += o.TotalAmount
			}
		case models.OrderStatusPending:
			st.PendingOrders++
		}
		if !placed.Before(chartStart) && placed.Before(today.AddDate(0, 0, 1)) {
			day := time.Date(placed.Year(), placed.Month(), placed.Day(), 0, 0, 0, 0, loc)
			st.LastWeek[int(day.Sub(chartStart).Hours()/24+0.5)].Sales += o.TotalAmount
		}
	}

	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SoldCount > sorted[j].SoldCount })
	for i := 0; i < len(sorted) && i < topProducts; i++ {
		p := sorted[i]
		st.TopProducts = append(st.TopProducts, ProductSales{ID: p.ID, Name: p.Name, SoldCount: p.SoldCount})
	}

	for _, p := range products {
		if p.StockQuantity < lowStockBelow {
			st.LowStock = append(st.LowStock, StockLevel{ID: p.ID, Name: p.Name, Stock: p.StockQuantity})
		}
	}
	return st
}
