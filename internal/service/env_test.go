package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/db/dbtest"
	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

type recordingNotifier struct {
	sent chan models.Order
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan models.Order, 16)}
}

func (n *recordingNotifier) Notify(_ context.Context, o *models.Order) error {
	n.sent <- *o
	return nil
}

type recordingFeed struct {
	mu    sync.Mutex
	kinds []string
}

func (f *recordingFeed) Publish(kind string, _ *models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
}

type env struct {
	repo     *repo.GormRepo
	carts    *CartService
	bills    *CartService
	coupons  *CouponService
	recon    *Reconciler
	orders   *OrderService
	billing  *BillingService
	catalog  *CatalogService
	users    *UserService
	notifier *recordingNotifier
	feed     *recordingFeed
}

func newEnv(t *testing.T) *env {
	t.Helper()

	r := &repo.GormRepo{DB: dbtest.Open(t)}
	e := &env{
		repo:     r,
		carts:    &CartService{Repo: r, Store: r, TTL: time.Hour, Policy: domain.ShippingPolicy{FreeThreshold: 499, Fee: 40}, Prefix: CartPrefixUser},
		bills:    &CartService{Repo: r, Store: r, TTL: time.Hour, Prefix: CartPrefixPOS},
		coupons:  &CouponService{Repo: r},
		recon:    &Reconciler{Repo: r, MaxAttempts: 50, Concurrency: 4, Backoff: time.Millisecond},
		catalog:  &CatalogService{Repo: r},
		users:    &UserService{Repo: r, SuperAdminEmail: "boss@nk.in"},
		notifier: newRecordingNotifier(),
		feed:     &recordingFeed{},
	}
	e.orders = &OrderService{
		Repo:      r,
		Carts:     e.carts,
		Coupons:   e.coupons,
		Inventory: e.recon,
		Notifier:  e.notifier,
		Feed:      e.feed,
	}
	e.billing = &BillingService{Orders: e.orders, Bills: e.bills}
	return e
}

func (e *env) product(t *testing.T, p models.Product) *models.Product {
	t.Helper()
	require.NoError(t, domain.NormalizeProduct(&p))
	require.NoError(t, e.repo.CreateProduct(context.Background(), &p))
	return &p
}

func (e *env) reload(t *testing.T, id string) *models.Product {
	t.Helper()
	p, err := e.repo.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p
}

func riceWithSizes() models.Product {
	return models.Product{
		Name:     "Rice",
		Category: "grains",
		Variants: models.Variants{
			{Unit: "1kg", Price: 100, Discount: 20, Stock: 10},
			{Unit: "500g", Price: 60, Stock: 5},
		},
	}
}

func homeAddress() models.Address {
	return models.Address{FullName: "Asha", Phone: "98400", HouseNo: "12", RoadName: "MG Road", City: "Chennai", State: "TN", Pincode: "600001"}
}

func line(p *models.Product, unit string, price, qty int64) models.CartLine {
	return models.CartLine{
		Key:           domain.LineKey(p.ID, unit),
		ProductID:     p.ID,
		Name:          p.Name,
		Unit:          unit,
		Price:         price,
		OriginalPrice: price,
		Quantity:      qty,
		StockCeiling:  qty,
	}
}
