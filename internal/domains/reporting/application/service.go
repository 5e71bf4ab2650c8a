package application

import (
	"context"
	"time"

	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/ports"
)

const (
	// DefaultWindowDays is the trailing sales window for the top-selling report.
	DefaultWindowDays = 30
	// DefaultTopLimit is how many rows the top-selling report returns.
	DefaultTopLimit = 5
)

// Service computes the statistics reports. now is injectable for tests.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock, fixing the trailing-window cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CountImmediateSubcategories reports, for every category ordered by id, how
// many categories name it as parent.
func (s *Service) CountImmediateSubcategories(ctx context.Context) ([]domain.SubcategoryCount, error) {
	return s.repo.SubcategoryCounts(ctx)
}

// TopSellingProducts aggregates quantities sold in the trailing window and
// rolls each product's category up to its top-level ancestor. Non-positive
// arguments fall back to the defaults.
func (s *Service) TopSellingProducts(ctx context.Context, windowDays, limit int) ([]domain.TopProduct, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	cutoff := s.now().UTC().AddDate(0, 0, -windowDays)
	rows, err := s.repo.ProductSalesSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	forest := catalogdomain.NewForest(categories)
	return domain.RollupTopProducts(rows, forest, limit), nil
}

// ClientOrderTotals reports revenue per client that has at least one order.
func (s *Service) ClientOrderTotals(ctx context.Context) ([]domain.ClientOrderSum, error) {
	return s.repo.ClientOrderSums(ctx)
}

var _ ports.Service = (*Service)(nil)
