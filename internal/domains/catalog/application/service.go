package application

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/ports"
)

// Service orchestrates catalog administration use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, title string, parentID *int64) (int64, error) {
	category, err := domain.NewCategory(title, parentID)
	if err != nil {
		return 0, mapError(err)
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// PatchCategory applies the filtered edit. A patch with nothing applicable is
// a no-op and returns (nil, nil), matching the soft-failure policy of
// administrative writes.
func (s *Service) PatchCategory(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	filtered, ok := patch.Filtered()
	if !ok {
		return nil, nil
	}
	return s.repo.PatchCategory(ctx, id, filtered)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	if err := product.Validate(); err != nil {
		return 0, mapError(err)
	}
	return s.repo.CreateProduct(ctx, product)
}

var _ ports.Service = (*Service)(nil)
