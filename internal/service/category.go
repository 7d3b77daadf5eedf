package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

// CategorySlug is the value products store for a category name: lower case,
// words joined by underscores.
func CategorySlug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return nil, fmt.Errorf("category name required: %w", ErrValidation)
	}

	c := &models.Category{Slug: CategorySlug(name), Name: name, IsActive: true}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("category %s exists: %w", c.Slug, ErrConflict)
		}
		return nil, err
	}
	return c, nil
}

// List returns categories by name; the storefront only sees active ones.
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx, activeOnly)
}

func (s *CategoryService) SetActive(ctx context.Context, slug string, active bool) error {
	slug = CategorySlug(slug)
	if err := s.Repo.SetCategoryActive(ctx, slug, active); err != nil {
		return notFound(err, "category %s", slug)
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	slug = CategorySlug(slug)
	if err := s.Repo.DeleteCategory(ctx, slug); err != nil {
		return notFound(err, "category %s", slug)
	}
	return nil
}
