package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/nk_store/internal/authz"
	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

const (
	PaymentCOD = "COD"

	maxOrderIDAttempts   = 5
	defaultNotifyTimeout = 10 * time.Second
)

// Notifier tells a customer about an order in its current status.
type Notifier interface {
	Notify(ctx context.Context, o *models.Order) error
}

// OrderFeed receives order events for the live back-office view.
type OrderFeed interface {
	Publish(kind string, o *models.Order)
}

type OrderService struct {
	Repo      *repo.GormRepo
	Carts     *CartService
	Coupons   *CouponService
	Inventory *Reconciler
	Notifier  Notifier
	Feed      OrderFeed

	NotifyTimeout time.Duration
	// NewID generates customer order ids; nil uses domain.NewReadableID.
	NewID func() (string, error)
}

type CheckoutInput struct {
	UserID      string
	UserEmail   string
	UserPhone   string
	Lines       models.CartLines
	Shipping    models.Address
	PaymentMode string
	CouponCode  string
}

type SubmitResult struct {
	Order *models.Order `json:"order"`
	Lines []LineResult  `json:"lines"`
}

func validAddress(a models.Address) bool {
	return strings.TrimSpace(a.FullName) != "" &&
		strings.TrimSpace(a.HouseNo) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Pincode) != ""
}

func validateLines(lines models.CartLines) error {
	if len(lines) == 0 {
		return fmt.Errorf("cart is empty: %w", ErrValidation)
	}
	for _, l := range lines {
		if l.ProductID == "" {
			return fmt.Errorf("line %q: product_id required: %w", l.Key, ErrValidation)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("line %q: quantity must be > 0: %w", l.Key, ErrValidation)
		}
		if l.Price < 0 {
			return fmt.Errorf("line %q: price must be >= 0: %w", l.Key, ErrValidation)
		}
	}
	return nil
}

// checkLines matches every line against its product before anything is
// stored: the product must exist and the unit must name one of its variants,
// or be empty for a product without variants.
func (s *OrderService) checkLines(ctx context.Context, lines models.CartLines) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return fmt.Errorf("product %s: %w", l.ProductID, ErrNotFound)
		}
		switch st := domain.StockOf(p).(type) {
		case domain.VariantStock:
			if l.Unit == "" {
				return fmt.Errorf("product %s has variants, unit required: %w", p.ID, ErrValidation)
			}
			if domain.FindVariant(st.Variants, l.Unit) < 0 {
				return fmt.Errorf("product %s unit %q: %w", p.ID, l.Unit, ErrNotFound)
			}
		case domain.FlatStock:
			if l.Unit != "" {
				return fmt.Errorf("product %s has no variants, unit %q given: %w", p.ID, l.Unit, ErrValidation)
			}
		}
	}
	return nil
}

// Submit places a customer order. The order is durable before stock is
// touched; line failures are reported in the result and never roll the
// order back.
func (s *OrderService) Submit(ctx context.Context, in CheckoutInput) (*SubmitResult, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user required: %w", ErrValidation)
	}
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	if !validAddress(in.Shipping) {
		return nil, fmt.Errorf("shipping address incomplete: %w", ErrValidation)
	}
	if err := s.checkLines(ctx, in.Lines); err != nil {
		return nil, err
	}

	adj := domain.Adjustments{}
	if strings.TrimSpace(in.CouponCode) != "" {
		c, err := s.Coupons.Validate(ctx, in.CouponCode)
		if err != nil {
			return nil, err
		}
		adj.DiscountCode, adj.DiscountPercent = c.Code, c.Discount
	}

	bill := domain.Bill{Lines: in.Lines}
	totals := bill.Totals(s.Carts.Policy, adj)

	payment := strings.TrimSpace(in.PaymentMode)
	if payment == "" {
		payment = PaymentCOD
	}

	order := &models.Order{
		UserID:    in.UserID,
		UserEmail: in.UserEmail,
		UserPhone: in.UserPhone,
		Shipping:  in.Shipping,
		Items:     bill.Items(),
		Subtotal:  totals.Subtotal,
		Discount: models.DiscountDetails{
			Code:    totals.DiscountCode,
			Percent: totals.DiscountPercent,
			Amount:  totals.DiscountAmount,
		},
		ShippingCost:   totals.ShippingCost,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.Total,
		Status:         models.OrderStatusPending,
		PaymentMode:    payment,
		Channel:        models.ChannelOnline,
		Reconciliation: models.ReconcilePending,
	}

	if err := s.insertWithReadableID(ctx, order); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("order_placed", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalAmount)
	return s.settle(ctx, order), nil
}

func (s *OrderService) insertWithReadableID(ctx context.Context, o *models.Order) error {
	newID := s.NewID
	if newID == nil {
		newID = domain.NewReadableID
	}
	for i := 0; i < maxOrderIDAttempts; i++ {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("generate order id: %w", err)
		}
		o.ID = id
		err = s.Repo.CreateOrder(ctx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("no free order id after %d attempts: %w", maxOrderIDAttempts, ErrConflict)
}

// settle runs stock reconciliation for a persisted order and fans out the
// events. It runs detached from request cancellation.
func (s *OrderService) settle(ctx context.Context, o *models.Order) *SubmitResult {
	ctx = context.WithoutCancel(ctx)
	l := logging.FromContext(ctx)

	results := s.Inventory.ReconcileOrder(ctx, o.ID, o.Items, domain.Decrement)
	o.Reconciliation = Outcome(results)
	if err := s.Repo.SetReconciliation(ctx, o.ID, o.Reconciliation); err != nil {
		l.Error("set_reconciliation_failed", "order_id", o.ID, "state", o.Reconciliation, "error", err)
	}
	if o.Reconciliation != models.ReconcileDone {
		l.Warn("order_reconciliation_incomplete", "order_id", o.ID, "state", o.Reconciliation)
	}

	s.publish("order_created", o)
	s.notify(ctx, o)
	return &SubmitResult{Order: o, Lines: results}
}

// CheckoutRequest places an order from the user's saved cart.
type CheckoutRequest struct {
	Shipping    *models.Address
	AddressID   string
	PaymentMode string
	CouponCode  string
}

func (s *OrderService) Checkout(ctx context.Context, user *models.User, req CheckoutRequest) (*SubmitResult, error) {
	if user == nil {
		return nil, fmt.Errorf("user required: %w", ErrValidation)
	}

	var ship models.Address
	switch {
	case req.Shipping != nil:
		ship = *req.Shipping
	case req.AddressID != "":
		found := false
		for _, a := range user.Addresses {
			if a.ID == req.AddressID {
				ship, found = a, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("address %s: %w", req.AddressID, ErrNotFound)
		}
	}

	bill, err := s.Carts.Bill(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	phone := ship.Phone
	if phone == "" {
		phone = user.Phone
	}
	res, err := s.Submit(ctx, CheckoutInput{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserPhone:   phone,
		Lines:       bill.Lines,
		Shipping:    ship,
		PaymentMode: req.PaymentMode,
		CouponCode:  req.CouponCode,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Carts.Clear(ctx, user.ID); err != nil {
		logging.FromContext(ctx).Warn("cart_clear_failed", "user_id", user.ID, "error", err)
	}
	return res, nil
}

// Quote prices the user's cart with an optional coupon without placing an order.
func (s *OrderService) Quote(ctx context.Context, userID, couponCode string) (*domain.Totals, error) {
	bill, err := s.Carts.Bill(ctx, userID)
	if err != nil {
		return nil, err
	}
	adj := domain.Adjustments{}
	if strings.TrimSpace(couponCode) != "" {
		c, err := s.Coupons.Validate(ctx, couponCode)
		if err != nil {
			return nil, err
		}
		adj.DiscountCode, adj.DiscountPercent = c.Code, c.Discount
	}
	t := bill.Totals(s.Carts.Policy, adj)
	return &t, nil
}

// Get returns an order visible to the viewer: its owner or back-office staff.
func (s *OrderService) Get(ctx context.Context, id, viewerID, role string) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order %s", id)
	}
	if o.UserID != viewerID && !authz.IsStaff(role) {
		return nil, fmt.Errorf("order %s: %w", id, ErrForbidden)
	}
	return o, nil
}

type Tracking struct {
	ID        string             `json:"id"`
	Status    models.OrderStatus `json:"status"`
	ItemCount int64              `json:"item_count"`
	Total     int64              `json:"total_amount"`
	PlacedAt  time.Time          `json:"date"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Track exposes the progress of an order by id without personal details.
func (s *OrderService) Track(ctx context.Context, id string) (*Tracking, error) {
	id = strings.TrimSpace(id)
	o, err := s.Repo.GetOrder(ctx, id)
	if repo.IsNotFound(err) && strings.ToUpper(id) != id {
		// Customer ids are upper case; POS ids are lower-case uuids.
		o, err = s.Repo.GetOrder(ctx, strings.ToUpper(id))
	}
	if err != nil {
		return nil, notFound(err, "order %s", id)
	}
	var count int64
	for _, it := range o.Items {
		count += it.Quantity
	}
	return &Tracking{ID: o.ID, Status: o.Status, ItemCount: count, Total: o.TotalAmount, PlacedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt}, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID, offset, limit)
}

func (s *OrderService) ListAll(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	st := models.OrderStatus(status)
	switch st {
	case "", models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return 0, nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	return s.Repo.ListOrders(ctx, st, offset, limit)
}

func (s *OrderService) Ship(ctx context.Context, id string) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusShipped)
}

func (s *OrderService) Deliver(ctx context.Context, id string) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusDelivered)
}

type CancelResult struct {
	Order *models.Order `json:"order"`
	Lines []LineResult  `json:"lines"`
}

// Cancel is allowed to the owner of a pending order and to staff. Stock that
// was taken for the order is put back.
func (s *OrderService) Cancel(ctx context.Context, id, actorID, role string) (*CancelResult, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order %s", id)
	}
	if o.UserID != actorID && !authz.IsStaff(role) {
		return nil, fmt.Errorf("order %s: %w", id, ErrForbidden)
	}

	o, err = s.move(ctx, o, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	l := logging.FromContext(ctx)

	var results []LineResult
	items, err := s.Inventory.restockItems(ctx, o)
	switch {
	case err == nil:
		results = s.Inventory.ReconcileOrder(ctx, o.ID, items, domain.Increment)
		if out := Outcome(results); out != models.ReconcileDone {
			l.Warn("order_restock_incomplete", "order_id", o.ID, "state", out)
			s.markReconciliation(ctx, o, out)
		}
	case o.Reconciliation == models.ReconcileDone:
		// Every decrement applied, so the items are exactly what was taken.
		l.Warn("restock_from_items", "order_id", o.ID, "reason", err.Error())
		results = s.Inventory.ReconcileOrder(ctx, o.ID, o.Items, domain.Increment)
		if out := Outcome(results); out != models.ReconcileDone {
			s.markReconciliation(ctx, o, out)
		}
	default:
		l.Error("restock_skipped", "order_id", o.ID, "state", o.Reconciliation, "error", err)
		results = []LineResult{}
		s.markReconciliation(ctx, o, models.ReconcileNeedsReview)
	}

	s.publish("order_status", o)
	s.notify(ctx, o)
	return &CancelResult{Order: o, Lines: results}, nil
}

func (s *OrderService) markReconciliation(ctx context.Context, o *models.Order, state string) {
	o.Reconciliation = state
	if err := s.Repo.SetReconciliation(ctx, o.ID, state); err != nil {
		logging.FromContext(ctx).Error("set_reconciliation_failed", "order_id", o.ID, "state", state, "error", err)
	}
}

func (s *OrderService) transition(ctx context.Context, id string, to models.OrderStatus) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order %s", id)
	}
	o, err = s.move(ctx, o, to)
	if err != nil {
		return nil, err
	}
	s.publish("order_status", o)
	s.notify(ctx, o)
	return o, nil
}

func (s *OrderService) move(ctx context.Context, o *models.Order, to models.OrderStatus) (*models.Order, error) {
	if err := domain.Transition(o.Status, to); err != nil {
		return nil, fmt.Errorf("order %s: %w", o.ID, err)
	}
	if err := s.Repo.UpdateOrderStatus(ctx, o.ID, o.Status, to); err != nil {
		if errors.Is(err, repo.ErrStaleStatus) {
			return nil, fmt.Errorf("order %s changed concurrently: %w", o.ID, ErrConflict)
		}
		return nil, err
	}
	logging.FromContext(ctx).Info("order_status_changed", "order_id", o.ID, "from", o.Status, "to", to)
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return o, nil
}

func (s *OrderService) publish(kind string, o *models.Order) {
	if s.Feed != nil {
		s.Feed.Publish(kind, o)
	}
}

// notify sends in the background; a failure is only logged.
func (s *OrderService) notify(ctx context.Context, o *models.Order) {
	if s.Notifier == nil {
		return
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	l := logging.FromContext(ctx)
	snapshot := *o

	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		if err := s.Notifier.Notify(nctx, &snapshot); err != nil {
			l.Warn("order_notify_failed", "order_id", snapshot.ID, "status", snapshot.Status, "error", err)
		}
	}()
}
