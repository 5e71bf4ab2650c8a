package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&clientRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Category schema mirrors the catalog Postgres adapter. Deleting a parent
// detaches its children (SET NULL) so the forest invariant survives deletes.
type categoryRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Title     string          `gorm:"column:title;type:varchar(255);not null"`
	ParentID  *int64          `gorm:"column:parent_id;index"`
	Parent    *categoryRecord `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog Postgres adapter. A category that still
// has products cannot be deleted (RESTRICT).
type productRecord struct {
	ID         int64          `gorm:"primaryKey;column:id"`
	Title      string         `gorm:"column:title;type:varchar(255);not null"`
	Price      float64        `gorm:"column:price;not null"`
	CategoryID int64          `gorm:"column:category_id;not null;index"`
	Category   categoryRecord `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Quantity   int32          `gorm:"column:quantity;not null;default:0"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Client schema mirrors the ordering Postgres adapter.
type clientRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null"`
	Address   *string   `gorm:"column:address;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientRecord) TableName() string { return "clients" }

// Order schema mirrors the ordering Postgres adapter. Date doubles as the
// last-modified marker and is touched on every item addition.
type orderRecord struct {
	ID       int64        `gorm:"primaryKey;column:id"`
	ClientID int64        `gorm:"column:client_id;not null;index"`
	Client   clientRecord `gorm:"foreignKey:ClientID"`
	Date     time.Time    `gorm:"column:date;not null;index"`
}

func (orderRecord) TableName() string { return "orders" }

// OrderItem schema mirrors the ordering Postgres adapter. The composite
// unique index uq_order_product backs the accumulate-on-conflict upsert.
type orderItemRecord struct {
	ID          int64         `gorm:"primaryKey;column:id"`
	OrderID     int64         `gorm:"column:order_id;not null;uniqueIndex:uq_order_product"`
	Order       orderRecord   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductID   int64         `gorm:"column:product_id;not null;uniqueIndex:uq_order_product"`
	Product     productRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity    int32         `gorm:"column:quantity;not null;default:1"`
	PriceAtTime float64       `gorm:"column:price_at_time;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }
