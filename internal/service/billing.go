package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/models"
)

const (
	ManualDiscountCode = "MANUAL"

	PaymentCash = "Cash"
	PaymentUPI  = "UPI"
	PaymentCard = "Card"
)

var (
	gstRates    = map[int64]bool{0: true, 5: true, 12: true, 18: true}
	posPayments = map[string]bool{PaymentCash: true, PaymentUPI: true, PaymentCard: true}
)

// BillingService settles counter sales. Bills holds the staff member's
// in-progress bill and must use a zero-shipping policy.
type BillingService struct {
	Orders *OrderService
	Bills  *CartService
}

type BillInput struct {
	Lines           models.CartLines
	CustomerName    string
	CustomerPhone   string
	DiscountPercent int64
	GSTRate         int64
	PaymentMode     string
}

func (in BillInput) validate() error {
	if err := validateLines(in.Lines); err != nil {
		return err
	}
	if !gstRates[in.GSTRate] {
		return fmt.Errorf("gst rate %d not in {0,5,12,18}: %w", in.GSTRate, ErrValidation)
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return fmt.Errorf("discount must be within [0,100]: %w", ErrValidation)
	}
	if !posPayments[in.PaymentMode] {
		return fmt.Errorf("payment mode %q not in {Cash,UPI,Card}: %w", in.PaymentMode, ErrValidation)
	}
	return nil
}

func walkInAddress(name, phone string) models.Address {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Walk-in"
	}
	return models.Address{
		Label:    "POS",
		FullName: name,
		Phone:    strings.TrimSpace(phone),
		HouseNo:  "Counter Sale",
		RoadName: "-",
		City:     "-",
		Pincode:  "-",
	}
}

// Checkout records a paid counter sale as a delivered order and takes its
// stock with the same reconciler as online orders.
func (s *BillingService) Checkout(ctx context.Context, in BillInput) (*SubmitResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.Orders.checkLines(ctx, in.Lines); err != nil {
		return nil, err
	}

	bill := domain.Bill{Lines: in.Lines}
	totals := bill.Totals(domain.ShippingPolicy{}, domain.Adjustments{
		DiscountCode:    ManualDiscountCode,
		DiscountPercent: in.DiscountPercent,
		TaxRate:         in.GSTRate,
	})

	order := &models.Order{
		ID:        uuid.NewString(),
		UserID:    models.POSUserID,
		UserPhone: strings.TrimSpace(in.CustomerPhone),
		Shipping:  walkInAddress(in.CustomerName, in.CustomerPhone),
		Items:     bill.Items(),
		Subtotal:  totals.Subtotal,
		Discount: models.DiscountDetails{
			Code:    totals.DiscountCode,
			Percent: totals.DiscountPercent,
			Amount:  totals.DiscountAmount,
		},
		ShippingCost:   0,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.Total,
		Status:         models.OrderStatusDelivered,
		PaymentMode:    in.PaymentMode,
		Channel:        models.ChannelPOS,
		Reconciliation: models.ReconcilePending,
	}

	if err := s.Orders.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("pos_sale_recorded", "order_id", order.ID, "total", order.TotalAmount, "payment", order.PaymentMode)
	return s.Orders.settle(ctx, order), nil
}

// CheckoutSession settles the staff member's saved bill and resets it.
func (s *BillingService) CheckoutSession(ctx context.Context, staffID string, in BillInput) (*SubmitResult, error) {
	bill, err := s.Bills.Bill(ctx, staffID)
	if err != nil {
		return nil, err
	}
	in.Lines = bill.Lines

	res, err := s.Checkout(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.Bills.Clear(ctx, staffID); err != nil {
		logging.FromContext(ctx).Warn("pos_bill_reset_failed", "staff_id", staffID, "error", err)
	}
	return res, nil
}

// Preview prices the staff member's saved bill with the given discount and GST.
func (s *BillingService) Preview(ctx context.Context, staffID string, discountPercent, gstRate int64) (*domain.Totals, error) {
	if !gstRates[gstRate] {
		return nil, fmt.Errorf("gst rate %d not in {0,5,12,18}: %w", gstRate, ErrValidation)
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, fmt.Errorf("discount must be within [0,100]: %w", ErrValidation)
	}
	bill, err := s.Bills.Bill(ctx, staffID)
	if err != nil {
		return nil, err
	}
	t := bill.Totals(domain.ShippingPolicy{}, domain.Adjustments{
		DiscountCode:    ManualDiscountCode,
		DiscountPercent: discountPercent,
		TaxRate:         gstRate,
	})
	return &t, nil
}
