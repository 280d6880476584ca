package circulation

import (
	"errors"
	"fmt"
)

// Every error below is recoverable at the call site: the operation that
// returned it has applied none of its effects.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid borrowing state")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrValidation         = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// InsufficientStockError names the offending book and the shortfall.
type InsufficientStockError struct {
	BookID    string
	BookTitle string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (%s): requested %d, available %d",
		e.BookTitle, e.BookID, e.Requested, e.Available)
}
