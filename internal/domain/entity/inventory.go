package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/pkg/money"
)

// Inventory holds the three stock counters for one product.
//
// Invariant: AvailableQuantity + DisplayQuantity <= StockQuantity, and all
// three counters are non-negative. Only the ledger operations in the
// service layer may mutate these fields.
type Inventory struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	StockQuantity     int            `gorm:"default:0" json:"stock_quantity"`
	DisplayQuantity   int            `gorm:"default:0" json:"display_quantity"`
	AvailableQuantity int            `gorm:"default:0" json:"available_quantity"`
	CostPrice         money.Amount   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant  Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Inventory) MarshalJSON() ([]byte, error) {
	type Alias Inventory
	return json.Marshal(&struct {
		Alias
		CostPrice float64 `json:"cost_price"`
	}{
		Alias:     Alias(i),
		CostPrice: i.CostPrice.Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new inventory row
func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Inventory model
func (Inventory) TableName() string {
	return "inventories"
}

// InventoryLog is an immutable audit record of a stock change. Rows are
// created, never updated or deleted.
type InventoryLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	ActorID        *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	QuantityChange int        `gorm:"not null" json:"quantity_change"` // signed
	Action         string     `gorm:"size:100;not null" json:"action"`
	Note           *string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	// Relationships
	Tenant  Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new inventory log
func (l *InventoryLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryLog model
func (InventoryLog) TableName() string {
	return "inventory_logs"
}
