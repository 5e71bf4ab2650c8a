package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidOrderID   = errors.New("order id must be greater than zero")
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidClientID  = errors.New("client id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
)

// Order belongs to a client. Date defaults to creation time and is touched on
// every item addition, acting as the last-modified marker.
type Order struct {
	ID       int64
	ClientID int64
	Date     time.Time
	Items    []OrderItem
}

// OrderItem is the single row per (order, product) pair. PriceAtTime captures
// the product price on first addition and is never re-derived; later
// additions only accumulate Quantity.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Quantity    int32
	PriceAtTime float64
}

// Subtotal is the item's contribution to the order total.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.PriceAtTime
}

// Reservation is a validated request to reserve stock for an order.
type Reservation struct {
	OrderID   int64
	ProductID int64
	Quantity  int32
}

// NewReservation validates identifiers and quantity. The transport layer
// validates too; the engine defends with its own checks.
func NewReservation(orderID, productID int64, quantity int32) (Reservation, error) {
	if orderID <= 0 {
		return Reservation{}, ErrInvalidOrderID
	}
	if productID <= 0 {
		return Reservation{}, ErrInvalidProductID
	}
	if quantity <= 0 {
		return Reservation{}, ErrInvalidQuantity
	}
	return Reservation{OrderID: orderID, ProductID: productID, Quantity: quantity}, nil
}
