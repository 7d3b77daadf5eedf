package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

const (
	defaultMaxAttempts = 5
	defaultConcurrency = 4
	defaultBackoff     = 10 * time.Millisecond
)

type LineAdjustment struct {
	ProductID string
	Unit      string
	Quantity  int64
	Direction domain.Direction
}

type LineResult struct {
	ProductID string `json:"product_id"`
	Unit      string `json:"unit,omitempty"`
	Quantity  int64  `json:"quantity"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Attempts  int    `json:"attempts"`
	Err       error  `json:"-"`
}

func (r LineResult) OK() bool { return r.Err == nil }

// Reconciler applies order lines to product stock. Each line is an
// optimistic read-modify-write of one product row, retried on version
// conflicts.
type Reconciler struct {
	Repo        *repo.GormRepo
	MaxAttempts int
	Concurrency int
	Backoff     time.Duration
}

func (r *Reconciler) maxAttempts() int {
	if r.MaxAttempts < 1 {
		return defaultMaxAttempts
	}
	return r.MaxAttempts
}

func (r *Reconciler) backoff(attempt int) time.Duration {
	base := r.Backoff
	if base <= 0 {
		base = defaultBackoff
	}
	return time.Duration(attempt)*base + rand.N(base)
}

// Apply adjusts stock for one line and reports how many attempts it took.
func (r *Reconciler) Apply(ctx context.Context, adj LineAdjustment) (int, error) {
	limit := r.maxAttempts()
	for attempt := 1; attempt <= limit; attempt++ {
		p, err := r.Repo.GetProduct(ctx, adj.ProductID)
		if err != nil {
			return attempt, notFound(err, "product %s", adj.ProductID)
		}

		if err := domain.ApplyAdjustment(p, adj.Unit, adj.Quantity, adj.Direction); err != nil {
			if errors.Is(err, domain.ErrUnknownVariant) {
				return attempt, fmt.Errorf("%w: %w", ErrNotFound, err)
			}
			return attempt, err
		}

		err = r.Repo.SaveProductCAS(ctx, p)
		if err == nil {
			return attempt, nil
		}
		if !errors.Is(err, repo.ErrVersionConflict) {
			return attempt, err
		}

		if attempt < limit {
			select {
			case <-ctx.Done():
				return attempt, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}
	return limit, fmt.Errorf("product %s after %d attempts: %w", adj.ProductID, limit, ErrTransactionAborted)
}

// ReconcileOrder applies every item concurrently, waits for all of them and
// records the outcome of each in the stock ledger. Results follow item order.
func (r *Reconciler) ReconcileOrder(ctx context.Context, orderID string, items models.OrderItems, dir domain.Direction) []LineResult {
	results := make([]LineResult, len(items))

	var g errgroup.Group
	limit := r.Concurrency
	if limit < 1 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i, it := range items {
		g.Go(func() error {
			attempts, err := r.Apply(ctx, LineAdjustment{
				ProductID: it.ProductID,
				Unit:      it.Unit,
				Quantity:  it.Quantity,
				Direction: dir,
			})
			results[i] = newLineResult(it, attempts, err)
			return nil
		})
	}
	_ = g.Wait()

	r.record(ctx, orderID, dir, results)
	return results
}

func newLineResult(it models.OrderItem, attempts int, err error) LineResult {
	res := LineResult{
		ProductID: it.ProductID,
		Unit:      it.Unit,
		Quantity:  it.Quantity,
		Status:    models.MovementApplied,
		Attempts:  attempts,
		Err:       err,
	}
	if err != nil {
		res.Status = models.MovementFailed
		if errors.Is(err, ErrTransactionAborted) {
			res.Status = models.MovementAborted
		}
		res.Error = err.Error()
	}
	return res
}

func (r *Reconciler) record(ctx context.Context, orderID string, dir domain.Direction, results []LineResult) {
	ms := make([]models.StockMovement, 0, len(results))
	for _, res := range results {
		delta := res.Quantity
		if dir == domain.Decrement {
			delta = -delta
		}
		ms = append(ms, models.StockMovement{
			OrderID:   orderID,
			ProductID: res.ProductID,
			Unit:      res.Unit,
			Delta:     delta,
			Status:    res.Status,
			Error:     res.Error,
			Attempts:  res.Attempts,
		})
	}
	if err := r.Repo.RecordMovements(ctx, ms); err != nil {
		logging.FromContext(ctx).Error("stock_ledger_write_failed", "order_id", orderID, "direction", dir.String(), "error", err)
	}
}

// Outcome summarises line results into an order reconciliation state.
func Outcome(results []LineResult) string {
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}
	switch {
	case failed == 0:
		return models.ReconcileDone
	case failed == len(results):
		return models.ReconcileNeedsReview
	default:
		return models.ReconcilePartiallyFulfilled
	}
}

// errNoLedger means the ledger holds nothing for an order, so what its
// submission took cannot be told from the ledger.
var errNoLedger = errors.New("no stock ledger entries")

// restockItems returns the lines a cancellation has to put back: only the
// decrements the ledger shows as applied.
func (r *Reconciler) restockItems(ctx context.Context, o *models.Order) (models.OrderItems, error) {
	ms, err := r.Repo.ListMovements(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, errNoLedger
	}

	items := make(models.OrderItems, 0, len(ms))
	for _, m := range ms {
		if m.Delta >= 0 || m.Status != models.MovementApplied {
			continue
		}
		items = append(items, models.OrderItem{ProductID: m.ProductID, Unit: m.Unit, Quantity: -m.Delta})
	}
	return items, nil
}

// FailedMovements lists ledger lines that did not apply, newest first, for
// manual follow-up.
func (r *Reconciler) FailedMovements(ctx context.Context, limit int) ([]models.StockMovement, error) {
	return r.Repo.ListFailedMovements(ctx, limit)
}
