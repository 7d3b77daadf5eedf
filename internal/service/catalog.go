package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
	"github.com/Skotchmaster/nk_store/internal/transport"
)

// Indexer is the optional full-text product index.
type Indexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Search(ctx context.Context, q string, offset, limit int) (int64, []string, error)
}

type CatalogService struct {
	Repo        *repo.GormRepo
	Index       Indexer
	MaxAttempts int
}

type ProductView struct {
	models.Product
	Display domain.PriceTag `json:"display_price"`
}

func viewOf(p models.Product) ProductView {
	return ProductView{Product: p, Display: domain.DisplayPrice(&p)}
}

func viewsOf(ps []models.Product) []ProductView {
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, viewOf(p))
	}
	return out
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product %s", id)
	}
	v := viewOf(*p)
	return &v, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []ProductView, error) {
	total, items, err := s.Repo.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, viewsOf(items), nil
}

// Search uses the full-text index when one is configured and reachable,
// otherwise a substring match on product names.
func (s *CatalogService) Search(ctx context.Context, q string, offset, limit int) (int64, []ProductView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("query required: %w", ErrValidation)
	}

	if s.Index != nil {
		total, ids, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.GetProductsByIDs(ctx, ids)
			if err != nil {
				return 0, nil, err
			}
			return total, viewsOf(items), nil
		}
		logging.FromContext(ctx).Warn("search_index_unavailable", "error", err)
	}

	return s.ListProducts(ctx, repo.ProductFilter{Query: q}, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*ProductView, error) {
	p := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Description:   req.Description,
		Featured:      req.Featured,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Variants:      req.Variants,
	}
	if err := domain.NormalizeProduct(p); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)

	v := viewOf(*p)
	return &v, nil
}

func applyPatch(p *models.Product, req transport.PatchProductRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Variants != nil {
		p.Variants = *req.Variants
	}
	if len(p.Variants) == 0 {
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.StockQuantity != nil {
			p.StockQuantity = *req.StockQuantity
		}
	}
}

// PatchProduct edits a product with the same optimistic write the stock
// reconciler uses, so an edit never overwrites a concurrent sale.
func (s *CatalogService) PatchProduct(ctx context.Context, id string, req transport.PatchProductRequest) (*ProductView, error) {
	limit := s.MaxAttempts
	if limit < 1 {
		limit = defaultMaxAttempts
	}

	for attempt := 1; attempt <= limit; attempt++ {
		p, err := s.Repo.GetProduct(ctx, id)
		if err != nil {
			return nil, notFound(err, "product %s", id)
		}
		applyPatch(p, req)
		if err := domain.NormalizeProduct(p); err != nil {
			return nil, err
		}

		err = s.Repo.SaveProductCAS(ctx, p)
		if errors.Is(err, repo.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.index(ctx, p)
		v := viewOf(*p)
		return &v, nil
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrTransactionAborted)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product %s", id)
	}
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_unindex_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// Reindex pushes every product to the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, fmt.Errorf("search index not configured: %w", ErrValidation)
	}
	items, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return 0, err
	}
	for i := range items {
		if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
	}
}
