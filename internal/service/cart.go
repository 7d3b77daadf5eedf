package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

const (
	CartPrefixUser = "user:"
	CartPrefixPOS  = "pos:"
)

// CartStore persists cart lines under an owner key with an expiry.
type CartStore interface {
	LoadCart(ctx context.Context, key string) (models.CartLines, error)
	SaveCart(ctx context.Context, key string, lines models.CartLines, ttl time.Duration) error
	DeleteCart(ctx context.Context, key string) error
}

// CartService is the server side of a storefront cart or a POS bill. Prefix
// separates the two key spaces and Policy decides shipping.
type CartService struct {
	Repo   *repo.GormRepo
	Store  CartStore
	TTL    time.Duration
	Policy domain.ShippingPolicy
	Prefix string
}

type CartView struct {
	Lines  models.CartLines `json:"lines"`
	Totals domain.Totals    `json:"totals"`
}

func (s *CartService) key(owner string) (string, error) {
	if strings.TrimSpace(owner) == "" {
		return "", fmt.Errorf("cart owner required: %w", ErrValidation)
	}
	return s.Prefix + owner, nil
}

func (s *CartService) load(ctx context.Context, owner string) (string, *domain.Bill, error) {
	key, err := s.key(owner)
	if err != nil {
		return "", nil, err
	}
	lines, err := s.Store.LoadCart(ctx, key)
	if err != nil {
		return "", nil, err
	}
	return key, &domain.Bill{Lines: lines}, nil
}

func (s *CartService) view(b *domain.Bill) *CartView {
	lines := b.Lines
	if lines == nil {
		lines = models.CartLines{}
	}
	return &CartView{Lines: lines, Totals: b.Totals(s.Policy, domain.Adjustments{})}
}

func (s *CartService) save(ctx context.Context, key string, b *domain.Bill) error {
	if len(b.Lines) == 0 {
		return s.Store.DeleteCart(ctx, key)
	}
	return s.Store.SaveCart(ctx, key, b.Lines, s.TTL)
}

// Bill returns the owner's current lines for checkout.
func (s *CartService) Bill(ctx context.Context, owner string) (*domain.Bill, error) {
	_, b, err := s.load(ctx, owner)
	return b, err
}

func (s *CartService) GetCart(ctx context.Context, owner string) (*CartView, error) {
	_, b, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return s.view(b), nil
}

// AddLine adds one unit of a product at its current price. An empty unit on
// a product with exactly one variant selects that variant.
func (s *CartService) AddLine(ctx context.Context, owner, productID, unit string) (*CartView, error) {
	if productID == "" {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}

	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product %s", productID)
	}
	snap, err := Snapshot(p, unit)
	if err != nil {
		return nil, err
	}

	key, b, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if _, err := b.AddLine(snap); err != nil {
		return nil, err
	}
	if err := s.save(ctx, key, b); err != nil {
		return nil, err
	}
	return s.view(b), nil
}

func (s *CartService) SetQuantity(ctx context.Context, owner, lineKey string, qty int64) (*CartView, error) {
	key, b, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := b.SetQuantity(lineKey, qty); err != nil {
		return nil, err
	}
	if err := s.save(ctx, key, b); err != nil {
		return nil, err
	}
	return s.view(b), nil
}

func (s *CartService) RemoveLine(ctx context.Context, owner, lineKey string) (*CartView, error) {
	key, b, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if b.RemoveLine(lineKey) {
		if err := s.save(ctx, key, b); err != nil {
			return nil, err
		}
	}
	return s.view(b), nil
}

func (s *CartService) Clear(ctx context.Context, owner string) error {
	key, err := s.key(owner)
	if err != nil {
		return err
	}
	return s.Store.DeleteCart(ctx, key)
}

// Snapshot captures the price and stock ceiling of a product (or one of its
// variants) at the moment it is added to a bill.
func Snapshot(p *models.Product, unit string) (models.CartLine, error) {
	line := models.CartLine{ProductID: p.ID, Name: p.Name}

	switch st := domain.StockOf(p).(type) {
	case domain.VariantStock:
		if unit == "" {
			if len(st.Variants) != 1 {
				return line, fmt.Errorf("product %s has %d sizes, unit required: %w", p.ID, len(st.Variants), ErrValidation)
			}
			unit = st.Variants[0].Unit
		}
		i := domain.FindVariant(st.Variants, unit)
		if i < 0 {
			return line, fmt.Errorf("product %s unit %q: %w", p.ID, unit, ErrNotFound)
		}
		v := st.Variants[i]
		line.Unit = v.Unit
		line.Price = domain.EffectivePrice(v.Price, v.Discount)
		line.OriginalPrice = v.Price
		line.StockCeiling = v.Stock

	case domain.FlatStock:
		if unit != "" {
			return line, fmt.Errorf("product %s has no sizes: %w", p.ID, ErrValidation)
		}
		line.Price = st.Price
		line.OriginalPrice = st.Price
		line.StockCeiling = st.Quantity
	}
	return line, nil
}
