package domain

import "errors"

var (
	ErrValidation         = errors.New("validation")
	ErrStockLimit         = errors.New("stock limit reached")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnknownVariant     = errors.New("unknown variant")
)
