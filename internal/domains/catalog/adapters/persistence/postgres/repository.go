package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists categories and products in PostgreSQL using GORM.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle and schema (platform/migrations).
func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// categoryRecord maps the category aggregate to a relational table.
type categoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Title     string    `gorm:"column:title;type:varchar(255);not null"`
	ParentID  *int64    `gorm:"column:parent_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	Title      string    `gorm:"column:title;type:varchar(255);not null"`
	Price      float64   `gorm:"column:price;not null"`
	CategoryID int64     `gorm:"column:category_id;not null;index"`
	Quantity   int32     `gorm:"column:quantity;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// CreateCategory inserts a category. Integrity violations (unknown parent)
// are logged and reported as a soft no-op with a zero id.
func (r *Repository) CreateCategory(ctx context.Context, category *domain.Category) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	record := categoryRecord{Title: category.Title, ParentID: cloneInt64Ptr(category.ParentID)}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isIntegrityViolation(err) {
			r.logWarn(ctx, "category insert violated a constraint", err, slog.String("title", category.Title))
			return 0, nil
		}
		return 0, err
	}
	return record.ID, nil
}

// ListCategories returns every category ordered by id.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

// PatchCategory applies a pre-filtered edit. Missing rows and integrity
// violations both surface as (nil, nil) per the soft-failure policy.
func (r *Repository) PatchCategory(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.ParentID != nil {
		updates["parent_id"] = *patch.ParentID
	}
	if len(updates) == 0 {
		return nil, nil
	}
	if err := r.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
		if isIntegrityViolation(err) {
			r.logWarn(ctx, "category patch violated a constraint", err, slog.Int64("category.id", id))
			return nil, nil
		}
		return nil, err
	}
	category := record.toDomain()
	return &category, nil
}

// DeleteCategory removes a category by id. A category that still has
// products is protected by the RESTRICT constraint; that violation is
// reported as not-deleted, not as an error.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Delete(&categoryRecord{}, id)
	if result.Error != nil {
		if isIntegrityViolation(result.Error) {
			r.logWarn(ctx, "category delete violated a constraint", result.Error, slog.Int64("category.id", id))
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateProduct inserts a product. An unknown category id is an integrity
// violation and follows the same soft no-op policy.
func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	record := productRecord{
		Title:      product.Title,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Quantity:   product.Quantity,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isIntegrityViolation(err) {
			r.logWarn(ctx, "product insert violated a constraint", err, slog.String("title", product.Title))
			return 0, nil
		}
		return 0, err
	}
	return record.ID, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func (r *Repository) logWarn(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	r.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func isIntegrityViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated)
}

func (r categoryRecord) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Title: r.Title, ParentID: cloneInt64Ptr(r.ParentID)}
}

func cloneInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
