package domain

import (
	"fmt"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// LineKey identifies a cart line: the same product at two sizes is two lines.
func LineKey(productID, unit string) string {
	if unit == "" {
		return productID
	}
	return productID + "-" + unit
}

// Bill aggregates cart or POS lines. It does no I/O; callers load and persist
// the lines around each mutation.
type Bill struct {
	Lines models.CartLines
}

func (b *Bill) find(key string) int {
	for i := range b.Lines {
		if b.Lines[i].Key == key {
			return i
		}
	}
	return -1
}

// AddLine adds one unit of the snapshot's product. The ceiling captured in
// the snapshot bounds the quantity; hitting it returns ErrStockLimit with no
// state change.
func (b *Bill) AddLine(s models.CartLine) (models.CartLine, error) {
	s.Key = LineKey(s.ProductID, s.Unit)

	if i := b.find(s.Key); i >= 0 {
		line := &b.Lines[i]
		if line.Quantity >= line.StockCeiling {
			return *line, fmt.Errorf("%s at %d: %w", line.Key, line.Quantity, ErrStockLimit)
		}
		line.Quantity++
		return *line, nil
	}

	if s.StockCeiling < 1 {
		return s, fmt.Errorf("%s out of stock: %w", s.Key, ErrStockLimit)
	}
	s.Quantity = 1
	b.Lines = append(b.Lines, s)
	return s, nil
}

func (b *Bill) SetQuantity(key string, qty int64) error {
	i := b.find(key)
	if i < 0 {
		return fmt.Errorf("line %s: %w", key, ErrValidation)
	}
	line := &b.Lines[i]
	if qty < 1 || qty > line.StockCeiling {
		return fmt.Errorf("%s: %d not in [1,%d]: %w", key, qty, line.StockCeiling, ErrQuantityOutOfRange)
	}
	line.Quantity = qty
	return nil
}

// RemoveLine reports whether a line was removed.
func (b *Bill) RemoveLine(key string) bool {
	i := b.find(key)
	if i < 0 {
		return false
	}
	b.Lines = append(b.Lines[:i], b.Lines[i+1:]...)
	return true
}

func (b *Bill) Subtotal() int64 {
	var total int64
	for _, l := range b.Lines {
		total += l.Price * l.Quantity
	}
	return total
}

// ShippingPolicy is a flat fee waived at or above the threshold. The zero
// value never charges shipping.
type ShippingPolicy struct {
	FreeThreshold int64
	Fee           int64
}

func (p ShippingPolicy) Cost(subtotal int64) int64 {
	if subtotal == 0 || subtotal >= p.FreeThreshold {
		return 0
	}
	return p.Fee
}

type Adjustments struct {
	DiscountCode    string
	DiscountPercent int64
	TaxRate         int64
}

type Totals struct {
	Subtotal        int64  `json:"subtotal"`
	DiscountCode    string `json:"discount_code,omitempty"`
	DiscountPercent int64  `json:"discount_percent"`
	DiscountAmount  int64  `json:"discount_amount"`
	TaxRate         int64  `json:"tax_rate"`
	TaxAmount       int64  `json:"tax_amount"`
	ShippingCost    int64  `json:"shipping_cost"`
	Total           int64  `json:"total"`
}

// Totals derives the financial breakdown. Tax applies to the discounted
// subtotal; shipping is decided on the undiscounted subtotal.
func (b *Bill) Totals(policy ShippingPolicy, adj Adjustments) Totals {
	t := Totals{
		Subtotal:        b.Subtotal(),
		DiscountCode:    adj.DiscountCode,
		DiscountPercent: adj.DiscountPercent,
		TaxRate:         adj.TaxRate,
	}
	t.DiscountAmount = PercentOf(t.Subtotal, adj.DiscountPercent)
	t.TaxAmount = PercentOf(t.Subtotal-t.DiscountAmount, adj.TaxRate)
	t.ShippingCost = policy.Cost(t.Subtotal)
	t.Total = t.Subtotal - t.DiscountAmount + t.TaxAmount + t.ShippingCost
	return t
}

// Items freezes the lines into order items.
func (b *Bill) Items() models.OrderItems {
	items := make(models.OrderItems, 0, len(b.Lines))
	for _, l := range b.Lines {
		items = append(items, models.OrderItem{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Unit:          l.Unit,
			Price:         l.Price,
			OriginalPrice: l.OriginalPrice,
			Quantity:      l.Quantity,
		})
	}
	return items
}
