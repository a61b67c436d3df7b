package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
)

// DisplayShelf represents a named physical location in the store. A shelf
// that has held products is deactivated, never hard-deleted.
type DisplayShelf struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Location  *string        `gorm:"size:500" json:"location,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant           `gorm:"foreignKey:TenantID" json:"-"`
	Products []DisplayProduct `gorm:"foreignKey:ShelfID" json:"products,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shelf
func (s *DisplayShelf) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DisplayShelf model
func (DisplayShelf) TableName() string {
	return "display_shelves"
}

// DisplayProduct is a (shelf, product) placement carrying the quantity
// currently on that shelf.
//
// Invariant: the sum of Quantity across a product's placements equals the
// product's Inventory.DisplayQuantity.
type DisplayProduct struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ShelfID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"shelf_id"`
	ProductID uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int                `gorm:"default:0" json:"quantity"`
	Status    enum.DisplayStatus `gorm:"default:0" json:"status"`
	Position  int                `gorm:"default:0" json:"position"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relationships
	Tenant  Tenant       `gorm:"foreignKey:TenantID" json:"-"`
	Shelf   DisplayShelf `gorm:"foreignKey:ShelfID" json:"-"`
	Product Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new placement
func (dp *DisplayProduct) BeforeCreate(tx *gorm.DB) error {
	if dp.ID == uuid.Nil {
		dp.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DisplayProduct model
func (DisplayProduct) TableName() string {
	return "display_products"
}

// DisplayLog is an immutable audit record of a shelf mutation. Rows are
// created, never updated or deleted.
type DisplayLog struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ShelfID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"shelf_id"`
	TargetShelfID  *uuid.UUID         `gorm:"type:uuid" json:"target_shelf_id,omitempty"` // set for MOVE
	ProductID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	ActorID        *uuid.UUID         `gorm:"type:uuid" json:"actor_id,omitempty"`
	Action         enum.DisplayAction `gorm:"not null" json:"action"`
	QuantityChange int                `gorm:"not null" json:"quantity_change"` // signed
	Note           *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`

	// Relationships
	Tenant  Tenant       `gorm:"foreignKey:TenantID" json:"-"`
	Shelf   DisplayShelf `gorm:"foreignKey:ShelfID" json:"-"`
	Product Product      `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new display log
func (l *DisplayLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DisplayLog model
func (DisplayLog) TableName() string {
	return "display_logs"
}
