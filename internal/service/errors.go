package service

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/nk_store/internal/domain"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

var (
	ErrValidation         = domain.ErrValidation         // 400
	ErrStockLimit         = domain.ErrStockLimit         // 400
	ErrQuantityOutOfRange = domain.ErrQuantityOutOfRange // 400
	ErrInsufficientStock  = domain.ErrInsufficientStock  // 409
	ErrInvalidTransition  = domain.ErrInvalidTransition  // 409

	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 409
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrTransactionAborted = errors.New("transaction aborted") // 503
)

// notFound rewrites a missing-row error into ErrNotFound; other errors pass through.
func notFound(err error, format string, args ...any) error {
	if repo.IsNotFound(err) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}
