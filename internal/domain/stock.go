package domain

import (
	"fmt"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// Stock is the resolved shape of a product's inventory: either a flat
// counter or a list of variants each carrying its own stock.
type Stock interface {
	isStock()
}

type FlatStock struct {
	Price    int64
	Quantity int64
}

type VariantStock struct {
	Variants []models.Variant
}

func (FlatStock) isStock()    {}
func (VariantStock) isStock() {}

func StockOf(p *models.Product) Stock {
	if len(p.Variants) > 0 {
		return VariantStock{Variants: p.Variants}
	}
	return FlatStock{Price: p.Price, Quantity: p.StockQuantity}
}

// FindVariant returns the index of the variant with the given unit, or -1.
func FindVariant(vs []models.Variant, unit string) int {
	for i := range vs {
		if vs[i].Unit == unit {
			return i
		}
	}
	return -1
}

type Direction int

const (
	// Decrement books a sale: stock goes down, sold_count goes up.
	Decrement Direction = iota
	// Increment reverses a sale on cancellation.
	Increment
)

func (d Direction) String() string {
	if d == Increment {
		return "increment"
	}
	return "decrement"
}

// ApplyAdjustment mutates p in place for one order line. A decrement that
// would take stock below zero fails with ErrInsufficientStock and leaves p
// untouched. On increment sold_count is clamped at zero.
func ApplyAdjustment(p *models.Product, unit string, qty int64, dir Direction) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be > 0: %w", ErrValidation)
	}

	switch s := StockOf(p).(type) {
	case VariantStock:
		if unit == "" {
			return fmt.Errorf("product %s has variants, unit required: %w", p.ID, ErrValidation)
		}
		i := FindVariant(s.Variants, unit)
		if i < 0 {
			return fmt.Errorf("product %s unit %q: %w", p.ID, unit, ErrUnknownVariant)
		}

		next, err := adjust(s.Variants[i].Stock, qty, dir)
		if err != nil {
			return fmt.Errorf("product %s unit %q has %d, need %d: %w", p.ID, unit, s.Variants[i].Stock, qty, err)
		}

		variants := make(models.Variants, len(s.Variants))
		copy(variants, s.Variants)
		variants[i].Stock = next
		p.Variants = variants
		p.StockQuantity = sumStock(variants)

	case FlatStock:
		next, err := adjust(s.Quantity, qty, dir)
		if err != nil {
			return fmt.Errorf("product %s has %d, need %d: %w", p.ID, s.Quantity, qty, err)
		}
		p.StockQuantity = next
	}

	if dir == Decrement {
		p.SoldCount += qty
	} else {
		p.SoldCount = max(0, p.SoldCount-qty)
	}
	return nil
}

func adjust(stock, qty int64, dir Direction) (int64, error) {
	if dir == Increment {
		return stock + qty, nil
	}
	if stock < qty {
		return 0, ErrInsufficientStock
	}
	return stock - qty, nil
}
