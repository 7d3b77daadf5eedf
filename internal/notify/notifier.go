package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/nk_store/internal/models"
)

type UserLookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Email is the event consumed by the mailer.
type Email struct {
	OrderID         string    `json:"order_id"`
	Status          string    `json:"status"`
	ToName          string    `json:"to_name"`
	ToEmail         string    `json:"to_email"`
	Subject         string    `json:"subject"`
	Intro           string    `json:"message_intro"`
	ProductList     string    `json:"product_list"`
	TotalPrice      int64     `json:"total_price"`
	ShippingAddress string    `json:"shipping_address"`
	SentAt          time.Time `json:"date"`
}

// OrderNotifier emails customers who opted in to order updates. Counter
// sales and orders without an email are never notified.
type OrderNotifier struct {
	Users     UserLookup
	Publisher Publisher
	Now       func() time.Time
}

func Subject(o *models.Order) (subject, intro string, ok bool) {
	switch o.Status {
	case models.OrderStatusPending:
		return fmt.Sprintf("Order Placed Successfully #%s", o.ID), "Thank you for your purchase! We are processing your order.", true
	case models.OrderStatusShipped:
		return fmt.Sprintf("Order #%s Shipped!", o.ID), "Good news! Your items are packed and on the way.", true
	case models.OrderStatusDelivered:
		return fmt.Sprintf("Order #%s Delivered", o.ID), "Your item has been delivered. Enjoy your purchase!", true
	case models.OrderStatusCancelled:
		return fmt.Sprintf("Order #%s Cancelled", o.ID), "This order has been cancelled as per request.", true
	}
	return "", "", false
}

func (n *OrderNotifier) Notify(ctx context.Context, o *models.Order) error {
	if o.Channel == models.ChannelPOS || o.UserID == models.POSUserID {
		return nil
	}
	if strings.TrimSpace(o.UserEmail) == "" {
		return nil
	}

	u, err := n.Users.GetUser(ctx, o.UserID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", o.UserID, err)
	}
	if !u.OrderUpdates {
		return nil
	}

	subject, intro, ok := Subject(o)
	if !ok {
		return nil
	}

	msg := BuildEmail(o, subject, intro, n.now())
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.Publisher.Publish(ctx, o.ID, b)
}

func (n *OrderNotifier) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now().UTC()
}

func BuildEmail(o *models.Order, subject, intro string, at time.Time) Email {
	name := o.Shipping.FullName
	if name == "" {
		name = "Valued Customer"
	}

	lines := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("• %s (x%d) - ₹%d", it.Name, it.Quantity, it.Price*it.Quantity))
	}

	landmark := o.Shipping.Landmark
	if landmark == "" {
		landmark = "N/A"
	}
	addr := fmt.Sprintf("%s, %s,\n%s, %s - %s.\nLandmark: %s",
		o.Shipping.HouseNo, o.Shipping.RoadName, o.Shipping.City, o.Shipping.State, o.Shipping.Pincode, landmark)

	return Email{
		OrderID:         o.ID,
		Status:          string(o.Status),
		ToName:          name,
		ToEmail:         o.UserEmail,
		Subject:         subject,
		Intro:           intro,
		ProductList:     strings.Join(lines, "\n"),
		TotalPrice:      o.TotalAmount,
		ShippingAddress: addr,
		SentAt:          at,
	}
}
