package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/nk_store/internal/repo"
	"github.com/Skotchmaster/nk_store/internal/report"
)

const (
	ReportSales     = "sales"
	ReportInventory = "inventory"
	ReportCustomers = "customers"
)

type ReportService struct {
	Repo *repo.GormRepo
}

// Build loads the rows behind a named report.
func (s *ReportService) Build(ctx context.Context, kind string) (report.Table, error) {
	switch kind {
	case ReportSales:
		orders, err := s.Repo.AllOrders(ctx)
		if err != nil {
			return report.Table{}, err
		}
		return report.Sales(orders), nil
	case ReportInventory:
		products, err := s.Repo.AllProducts(ctx)
		if err != nil {
			return report.Table{}, err
		}
		return report.Inventory(products), nil
	case ReportCustomers:
		users, err := s.Repo.ListUsers(ctx)
		if err != nil {
			return report.Table{}, err
		}
		return report.Customers(users), nil
	default:
		return report.Table{}, fmt.Errorf("unknown report %q: %w", kind, ErrValidation)
	}
}

// Dashboard loads the back-office overview as of now.
func (s *ReportService) Dashboard(ctx context.Context, now time.Time) (report.Stats, error) {
	orders, err := s.Repo.AllOrders(ctx)
	if err != nil {
		return report.Stats{}, err
	}
	products, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return report.Stats{}, err
	}
	return report.Dashboard(orders, products, now), nil
}
