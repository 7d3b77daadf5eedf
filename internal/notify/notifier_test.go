package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/models"
)

type stubUsers map[string]*models.User

func (s stubUsers) GetUser(_ context.Context, id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

type capture struct {
	keys   []string
	values [][]byte
}

func (c *capture) Publish(_ context.Context, key string, value []byte) error {
	c.keys = append(c.keys, key)
	c.values = append(c.values, value)
	return nil
}

func (c *capture) Close() error { return nil }

func newNotifier() (*OrderNotifier, *capture) {
	pub := &capture{}
	return &OrderNotifier{
		Users: stubUsers{
			"opted-in":  {ID: "opted-in", Email: "in@nk.in", OrderUpdates: true},
			"opted-out": {ID: "opted-out", Email: "out@nk.in"},
		},
		Publisher: pub,
		Now:       func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	}, pub
}

func TestNotify_SendsToOptedInUser(t *testing.T) {
	t.Parallel()

	n, pub := newNotifier()
	o := &models.Order{
		ID: "ABC2345", UserID: "opted-in", UserEmail: "in@nk.in", Status: models.OrderStatusShipped,
		Channel: models.ChannelOnline, TotalAmount: 160,
		Items:    models.OrderItems{{Name: "Rice", Price: 80, Quantity: 2}},
		Shipping: models.Address{FullName: "Asha", HouseNo: "12", RoadName: "MG Road", City: "Chennai", State: "TN", Pincode: "600001"},
	}
	require.NoError(t, n.Notify(context.Background(), o))

	require.Len(t, pub.values, 1)
	assert.Equal(t, "ABC2345", pub.keys[0])

	var msg Email
	require.NoError(t, json.Unmarshal(pub.values[0], &msg))
	assert.Equal(t, "Order #ABC2345 Shipped!", msg.Subject)
	assert.Equal(t, "Asha", msg.ToName)
	assert.Equal(t, "• Rice (x2) - ₹160", msg.ProductList)
	assert.Contains(t, msg.ShippingAddress, "Landmark: N/A")
}

func TestNotify_Skips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order models.Order
	}{
		{name: "opted out", order: models.Order{ID: "A", UserID: "opted-out", UserEmail: "out@nk.in", Status: models.OrderStatusPending}},
		{name: "no email", order: models.Order{ID: "B", UserID: "opted-in", Status: models.OrderStatusPending}},
		{name: "pos sale", order: models.Order{ID: "C", UserID: models.POSUserID, UserEmail: "x@nk.in", Channel: models.ChannelPOS, Status: models.OrderStatusDelivered}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, pub := newNotifier()
			require.NoError(t, n.Notify(context.Background(), &tt.order))
			assert.Empty(t, pub.values)
		})
	}
}

func TestNotify_UnknownUserIsAnError(t *testing.T) {
	t.Parallel()

	n, pub := newNotifier()
	err := n.Notify(context.Background(), &models.Order{ID: "Z", UserID: "ghost", UserEmail: "g@nk.in", Status: models.OrderStatusPending})
	assert.Error(t, err)
	assert.Empty(t, pub.values)
}

func TestSubject(t *testing.T) {
	t.Parallel()

	for status, want := range map[models.OrderStatus]string{
		models.OrderStatusPending:   "Order Placed Successfully #X1",
		models.OrderStatusShipped:   "Order #X1 Shipped!",
		models.OrderStatusDelivered: "Order #X1 Delivered",
		models.OrderStatusCancelled: "Order #X1 Cancelled",
	} {
		got, _, ok := Subject(&models.Order{ID: "X1", Status: status})
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, _, ok := Subject(&models.Order{ID: "X1", Status: "Lost"})
	assert.False(t, ok)
}

func TestNewProducer_Validates(t *testing.T) {
	t.Parallel()

	_, err := NewProducer(nil, "t")
	assert.Error(t, err)
	_, err = NewProducer([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	p, err := NewProducer([]string{"localhost:9092"}, "order-notifications")
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
