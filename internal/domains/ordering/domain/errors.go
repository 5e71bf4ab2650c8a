package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound means the referenced order id has no row. Orders are
	// created explicitly; adding items never creates one implicitly.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound means the referenced product id has no row.
	ErrProductNotFound = errors.New("product not found")
	// ErrClientNotFound means an order was requested for an unknown client.
	ErrClientNotFound = errors.New("client not found")
)

// ProductNotAvailableError reports a reservation that exceeds on-hand stock.
// Available carries the quantity the caller could still request.
type ProductNotAvailableError struct {
	ProductID int64
	Requested int32
	Available int32
}

func (e *ProductNotAvailableError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
