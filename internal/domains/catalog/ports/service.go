package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
)

// Service exposes catalog administration use cases to adapters.
type Service interface {
	CreateCategory(ctx context.Context, title string, parentID *int64) (int64, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	PatchCategory(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
}
