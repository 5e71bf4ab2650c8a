package domain

import "errors"

var (
	ErrEmptyProductTitle = errors.New("product title must not be empty")
	ErrNegativePrice     = errors.New("product price must not be negative")
	ErrNegativeQuantity  = errors.New("product quantity must not be negative")
	ErrMissingCategory   = errors.New("product requires a category")
)

// Product belongs to exactly one category and tracks on-hand stock. Quantity
// never goes negative; the ordering engine enforces that under row locks.
type Product struct {
	ID         int64
	Title      string
	Price      float64
	CategoryID int64
	Quantity   int32
}

// NewProduct validates and constructs a Product.
func NewProduct(title string, price float64, categoryID int64, quantity int32) (*Product, error) {
	product := &Product{Title: title, Price: price, CategoryID: categoryID, Quantity: quantity}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrEmptyProductTitle
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.CategoryID <= 0 {
		return ErrMissingCategory
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
