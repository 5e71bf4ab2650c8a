package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists ordering state in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB
// lifecycle and schema (platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type clientRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
	Address   *string   `gorm:"column:address;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

type orderRecord struct {
	ID       int64     `gorm:"primaryKey;column:id"`
	ClientID int64     `gorm:"column:client_id;not null;index"`
	Date     time.Time `gorm:"column:date;not null;index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64   `gorm:"primaryKey;column:id"`
	OrderID     int64   `gorm:"column:order_id;not null;uniqueIndex:uq_order_product"`
	ProductID   int64   `gorm:"column:product_id;not null;uniqueIndex:uq_order_product"`
	Quantity    int32   `gorm:"column:quantity;not null;default:1"`
	PriceAtTime float64 `gorm:"column:price_at_time;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// productRecord maps only the fields the engine touches. The products table
// is owned by the catalog context; the engine locks and decrements it in the
// same transaction as the order item upsert.
type productRecord struct {
	ID       int64   `gorm:"primaryKey;column:id"`
	Price    float64 `gorm:"column:price"`
	Quantity int32   `gorm:"column:quantity"`
}

func (productRecord) TableName() string { return "products" }

// AddProductToOrder executes the reservation protocol in one transaction:
//
//  1. SELECT ... FOR UPDATE on the order row; missing row -> ErrOrderNotFound.
//  2. Touch orders.date with the transaction time.
//  3. SELECT ... FOR UPDATE on the product row; missing row -> ErrProductNotFound.
//  4. Stock check against the locked row; shortfall -> ProductNotAvailableError.
//  5. Decrement products.quantity.
//  6. INSERT the order item, ON CONFLICT (order_id, product_id) accumulate
//     quantity. price_at_time is written on first insert only.
//
// Locks are always taken Order before Product so concurrent reservations on
// overlapping pairs cannot deadlock. Any error rolls the transaction back.
func (r *Repository) AddProductToOrder(ctx context.Context, reservation domain.Reservation) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", reservation.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if err := tx.Model(&orderRecord{}).
			Where("id = ?", reservation.OrderID).
			Update("date", time.Now().UTC()).Error; err != nil {
			return err
		}

		var product productRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", reservation.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		if product.Quantity < reservation.Quantity {
			return &domain.ProductNotAvailableError{
				ProductID: reservation.ProductID,
				Requested: reservation.Quantity,
				Available: product.Quantity,
			}
		}

		if err := tx.Model(&productRecord{}).
			Where("id = ?", reservation.ProductID).
			Update("quantity", gorm.Expr("quantity - ?", reservation.Quantity)).Error; err != nil {
			return err
		}

		item := orderItemRecord{
			OrderID:     reservation.OrderID,
			ProductID:   reservation.ProductID,
			Quantity:    reservation.Quantity,
			PriceAtTime: product.Price,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("order_items.quantity + EXCLUDED.quantity"),
			}),
		}).Create(&item).Error
	})
}

// CreateClient inserts a client.
func (r *Repository) CreateClient(ctx context.Context, client *domain.Client) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	record := clientRecord{Name: client.Name, Email: client.Email, Address: client.Address}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// CreateOrder opens an empty order for an existing client.
func (r *Repository) CreateOrder(ctx context.Context, clientID int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var order *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client clientRecord
		if err := tx.First(&client, "id = ?", clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClientNotFound
			}
			return err
		}
		record := orderRecord{ClientID: clientID, Date: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		order = record.toDomain(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder fetches an order with its items.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return record.toDomain(items), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres ordering repository not configured")
	}
	return nil
}

func (r orderRecord) toDomain(items []orderItemRecord) *domain.Order {
	order := &domain.Order{ID: r.ID, ClientID: r.ClientID, Date: r.Date}
	for i := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          items[i].ID,
			OrderID:     items[i].OrderID,
			ProductID:   items[i].ProductID,
			Quantity:    items[i].Quantity,
			PriceAtTime: items[i].PriceAtTime,
		})
	}
	return order
}
