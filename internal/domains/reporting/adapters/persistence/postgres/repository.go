package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	catalogdomain "github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/reporting/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository runs the aggregation queries against the relational store. The
// SQL is dialect-neutral (no locks, no vendor functions), so the same adapter
// backs the sqlite-based tests.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SubcategoryCounts counts, for every category, the categories whose
// parent_id names it. LEFT JOIN keeps childless categories in the result
// with a zero count. Ordered by category id ascending.
func (r *Repository) SubcategoryCounts(ctx context.Context) ([]domain.SubcategoryCount, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Title              string
		SubcategoriesCount int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.title AS title, COUNT(ch.id) AS subcategories_count
		FROM categories c
		LEFT JOIN categories ch ON ch.parent_id = c.id
		GROUP BY c.id, c.title
		ORDER BY c.id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	report := make([]domain.SubcategoryCount, 0, len(rows))
	for _, row := range rows {
		report = append(report, domain.SubcategoryCount{
			Title:              row.Title,
			SubcategoriesCount: row.SubcategoriesCount,
		})
	}
	return report, nil
}

// ProductSalesSince sums item quantities per (product title, category) over
// orders dated at or after the cutoff. The top-level rollup happens in the
// application layer against the in-memory category forest.
func (r *Repository) ProductSalesSince(ctx context.Context, cutoff time.Time) ([]domain.ProductCategorySales, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		ProductTitle string
		CategoryID   int64
		Quantity     int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.title AS product_title, p.category_id AS category_id, SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.date >= ?
		GROUP BY p.title, p.category_id`, cutoff).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sales := make([]domain.ProductCategorySales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, domain.ProductCategorySales{
			ProductTitle: row.ProductTitle,
			CategoryID:   row.CategoryID,
			Quantity:     row.Quantity,
		})
	}
	return sales, nil
}

// Categories loads the full category set for the forest.
func (r *Repository) Categories(ctx context.Context) ([]catalogdomain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		ID       int64
		Title    string
		ParentID *int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, title, parent_id FROM categories ORDER BY id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	categories := make([]catalogdomain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, catalogdomain.Category{
			ID:       row.ID,
			Title:    row.Title,
			ParentID: row.ParentID,
		})
	}
	return categories, nil
}

// ClientOrderSums computes revenue per client. INNER JOIN drops clients with
// no orders; LEFT JOIN keeps empty orders with a coalesced zero sum.
func (r *Repository) ClientOrderSums(ctx context.Context) ([]domain.ClientOrderSum, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Name     string
		TotalSum float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT cl.name AS name, COALESCE(SUM(oi.quantity * oi.price_at_time), 0) AS total_sum
		FROM clients cl
		JOIN orders o ON o.client_id = cl.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY cl.id, cl.name
		ORDER BY cl.id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	report := make([]domain.ClientOrderSum, 0, len(rows))
	for _, row := range rows {
		report = append(report, domain.ClientOrderSum{Name: row.Name, TotalSum: row.TotalSum})
	}
	return report, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres reporting repository not configured")
	}
	return nil
}
