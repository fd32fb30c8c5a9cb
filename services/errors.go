package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrCabinNotFound   = errors.New("no cabin registered")
	ErrClientNotFound  = errors.New("client not found")

	ErrSlotTaken       = errors.New("requested slot is no longer available")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidDateTime = errors.New("invalid date or time")
	ErrInvalidQuantity = errors.New("product quantity must be positive")
)

// InsufficientStockError aborts the whole booking when any product line asks
// for more units than are in stock.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
