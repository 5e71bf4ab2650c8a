package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
)

// Service exposes ordering use cases to adapters.
type Service interface {
	AddProductToOrder(ctx context.Context, orderID, productID int64, quantity int32) error
	CreateClient(ctx context.Context, client *domain.Client) (int64, error)
	CreateOrder(ctx context.Context, clientID int64) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}
