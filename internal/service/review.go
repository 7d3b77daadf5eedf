package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Skotchmaster/nk_store/internal/authz"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewService keeps product reviews and the rating summary stored on the
// product row. The summary is recomputed from the reviews after every change.
type ReviewService struct {
	Repo        *repo.GormRepo
	MaxAttempts int
}

func checkReview(rating int64, comment string) (string, error) {
	if rating < minRating || rating > maxRating {
		return "", fmt.Errorf("rating must be within [%d,%d]: %w", minRating, maxRating, ErrValidation)
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", fmt.Errorf("comment is empty: %w", ErrValidation)
	}
	return comment, nil
}

func (s *ReviewService) List(ctx context.Context, productID string, offset, limit int) (int64, []models.Review, error) {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return 0, nil, notFound(err, "product %s", productID)
	}
	return s.Repo.ListReviews(ctx, productID, offset, limit)
}

// ListAll pages reviews across every product for moderation.
func (s *ReviewService) ListAll(ctx context.Context, offset, limit int) (int64, []models.Review, error) {
	return s.Repo.ListReviews(ctx, "", offset, limit)
}

func (s *ReviewService) Add(ctx context.Context, user *models.User, productID string, rating int64, comment string) (*models.Review, error) {
	if user == nil {
		return nil, fmt.Errorf("user required: %w", ErrValidation)
	}
	comment, err := checkReview(rating, comment)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "product %s", productID)
	}

	name := strings.TrimSpace(user.DisplayName)
	if name == "" {
		name = "User"
	}
	rv := &models.Review{ProductID: productID, UserID: user.ID, UserName: name, Rating: rating, Comment: comment}
	if err := s.Repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}

	s.refresh(ctx, productID)
	return rv, nil
}

// Edit changes a review; only its author may.
func (s *ReviewService) Edit(ctx context.Context, id, actorID string, rating int64, comment string) (*models.Review, error) {
	comment, err := checkReview(rating, comment)
	if err != nil {
		return nil, err
	}
	rv, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return nil, notFound(err, "review %s", id)
	}
	if rv.UserID != actorID {
		return nil, fmt.Errorf("review %s: %w", id, ErrForbidden)
	}
	if err := s.Repo.UpdateReview(ctx, id, rating, comment); err != nil {
		return nil, notFound(err, "review %s", id)
	}

	s.refresh(ctx, rv.ProductID)
	rv.Rating, rv.Comment, rv.Edited = rating, comment, true
	return rv, nil
}

// Delete removes a review for its author or an admin.
func (s *ReviewService) Delete(ctx context.Context, id, actorID, role string) error {
	rv, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return notFound(err, "review %s", id)
	}
	if rv.UserID != actorID && !authz.IsAdmin(role) {
		return fmt.Errorf("review %s: %w", id, ErrForbidden)
	}
	if err := s.Repo.DeleteReview(ctx, id); err != nil {
		return notFound(err, "review %s", id)
	}

	s.refresh(ctx, rv.ProductID)
	return nil
}

func averageRating(st repo.ReviewStats) float64 {
	if st.Reviews == 0 {
		return 0
	}
	return math.Round(float64(st.Points)*10/float64(st.Reviews)) / 10
}

// RefreshRating recomputes the product's rating summary and writes it with a
// version check, so it never overwrites a concurrent stock change.
func (s *ReviewService) RefreshRating(ctx context.Context, productID string) error {
	limit := s.MaxAttempts
	if limit < 1 {
		limit = defaultMaxAttempts
	}

	for attempt := 1; attempt <= limit; attempt++ {
		p, err := s.Repo.GetProduct(ctx, productID)
		if err != nil {
			return notFound(err, "product %s", productID)
		}
		st, err := s.Repo.ReviewStats(ctx, productID)
		if err != nil {
			return err
		}
		p.ReviewCount = st.Reviews
		p.AverageRating = averageRating(st)

		err = s.Repo.SaveProductCAS(ctx, p)
		if errors.Is(err, repo.ErrVersionConflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("product %s rating: %w", productID, ErrTransactionAborted)
}

// refresh is best-effort: the review is already stored and the next change
// recomputes the summary from scratch.
func (s *ReviewService) refresh(ctx context.Context, productID string) {
	if err := s.RefreshRating(ctx, productID); err != nil && !errors.Is(err, ErrNotFound) {
		logging.FromContext(ctx).Error("rating_refresh_failed", "product_id", productID, "error", err)
	}
}
