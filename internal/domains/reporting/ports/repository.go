package ports

import (
	"context"
	"time"

	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/domain"
)

// Repository runs the read-only aggregation queries. Reads take no locks and
// observe a consistent per-statement snapshot.
type Repository interface {
	SubcategoryCounts(ctx context.Context) ([]domain.SubcategoryCount, error)
	ProductSalesSince(ctx context.Context, cutoff time.Time) ([]domain.ProductCategorySales, error)
	Categories(ctx context.Context) ([]catalogdomain.Category, error)
	ClientOrderSums(ctx context.Context) ([]domain.ClientOrderSum, error)
}
