package domain

import (
	"fmt"

	"github.com/Skotchmaster/nk_store/internal/models"
)

// PercentOf returns round(amount*percent/100) with halves rounded up.
func PercentOf(amount, percent int64) int64 {
	return roundDiv(amount*percent, 100)
}

// EffectivePrice is the unit price after a percent discount.
func EffectivePrice(price, discount int64) int64 {
	return roundDiv(price*(100-discount), 100)
}

// roundDiv computes floor(num/den + 1/2) for den > 0.
func roundDiv(num, den int64) int64 {
	n := 2*num + den
	d := 2 * den
	q := n / d
	if n%d < 0 {
		q--
	}
	return q
}

type PriceTag struct {
	Price    int64 `json:"price"`
	Original int64 `json:"original_price,omitempty"`
	Discount int64 `json:"discount,omitempty"`
}

// DisplayPrice picks the cheapest effective variant price. Original and
// Discount are set only when the winning variant is discounted.
func DisplayPrice(p *models.Product) PriceTag {
	if len(p.Variants) == 0 {
		return PriceTag{Price: p.Price}
	}

	best := -1
	var bestPrice int64
	for i, v := range p.Variants {
		eff := EffectivePrice(v.Price, v.Discount)
		if best < 0 || eff < bestPrice {
			best, bestPrice = i, eff
		}
	}

	tag := PriceTag{Price: bestPrice}
	if v := p.Variants[best]; v.Discount > 0 {
		tag.Original = v.Price
		tag.Discount = v.Discount
	}
	return tag
}

func ValidateVariants(vs []models.Variant) error {
	seen := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		if v.Unit == "" {
			return fmt.Errorf("variant unit required: %w", ErrValidation)
		}
		if _, dup := seen[v.Unit]; dup {
			return fmt.Errorf("duplicate variant unit %q: %w", v.Unit, ErrValidation)
		}
		seen[v.Unit] = struct{}{}

		if v.Price < 0 {
			return fmt.Errorf("variant %q: price must be >= 0: %w", v.Unit, ErrValidation)
		}
		if v.Discount < 0 || v.Discount > 100 {
			return fmt.Errorf("variant %q: discount must be within [0,100]: %w", v.Unit, ErrValidation)
		}
		if v.Stock < 0 {
			return fmt.Errorf("variant %q: stock must be >= 0: %w", v.Unit, ErrValidation)
		}
	}
	return nil
}

// NormalizeProduct validates a product and recomputes the fields derived from
// its variants: stock_quantity is the variant stock sum and price the
// cheapest effective variant price.
func NormalizeProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("name required: %w", ErrValidation)
	}
	if p.SoldCount < 0 {
		return fmt.Errorf("sold_count must be >= 0: %w", ErrValidation)
	}

	if len(p.Variants) == 0 {
		if p.Price < 0 {
			return fmt.Errorf("price must be >= 0: %w", ErrValidation)
		}
		if p.StockQuantity < 0 {
			return fmt.Errorf("stock_quantity must be >= 0: %w", ErrValidation)
		}
		return nil
	}

	if err := ValidateVariants(p.Variants); err != nil {
		return err
	}
	p.StockQuantity = sumStock(p.Variants)
	p.Price = DisplayPrice(p).Price
	return nil
}

func sumStock(vs []models.Variant) int64 {
	var total int64
	for _, v := range vs {
		total += v.Stock
	}
	return total
}
