package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/domain"
)

// Service exposes the statistics reports to adapters.
type Service interface {
	CountImmediateSubcategories(ctx context.Context) ([]domain.SubcategoryCount, error)
	TopSellingProducts(ctx context.Context, windowDays, limit int) ([]domain.TopProduct, error)
	ClientOrderTotals(ctx context.Context) ([]domain.ClientOrderSum, error)
}
