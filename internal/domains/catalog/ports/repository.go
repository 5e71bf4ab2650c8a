package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
)

// Repository persists categories and products.
//
// Administrative writes follow a soft-failure policy: constraint violations
// are logged by the adapter and reported as "not applied" (zero id, false)
// instead of propagating the store error.
type Repository interface {
	CreateCategory(ctx context.Context, category *domain.Category) (int64, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	PatchCategory(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
}
