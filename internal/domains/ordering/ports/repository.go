package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
)

// Repository persists clients, orders, and order items.
//
// AddProductToOrder is the inventory transaction engine: one atomic
// transaction that locks the order row, then the product row (always in that
// order), validates stock, decrements inventory, and upserts the
// (order, product) item with quantity accumulation. On any failure the whole
// transaction rolls back; stock decisions always re-read row state under
// lock, never a cached count.
type Repository interface {
	AddProductToOrder(ctx context.Context, reservation domain.Reservation) error
	CreateClient(ctx context.Context, client *domain.Client) (int64, error)
	CreateOrder(ctx context.Context, clientID int64) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}
