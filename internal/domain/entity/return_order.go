package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
)

// ReturnOrder is a return/exchange request against one completed
// transaction. Status moves PENDING -> APPROVED or REJECTED and never
// changes again.
//
// Invariant: TotalRefundAmount equals the sum of its details'
// RefundAmount; it is derived and never set by a caller.
type ReturnOrder struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	TransactionID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"transaction_id"`
	CustomerID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status            enum.ReturnStatus `gorm:"default:0" json:"status"`
	TotalRefundAmount money.Amount      `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Note              *string           `gorm:"type:text" json:"note,omitempty"`
	ResolvedAt        *time.Time        `json:"resolved_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Tenant      Tenant              `gorm:"foreignKey:TenantID" json:"-"`
	Transaction Transaction         `gorm:"foreignKey:TransactionID" json:"-"`
	Customer    Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Details     []ReturnOrderDetail `gorm:"foreignKey:ReturnOrderID" json:"details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ro ReturnOrder) MarshalJSON() ([]byte, error) {
	type Alias ReturnOrder
	return json.Marshal(&struct {
		Alias
		TotalRefundAmount float64 `json:"total_refund_amount"`
	}{
		Alias:             Alias(ro),
		TotalRefundAmount: ro.TotalRefundAmount.Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new return order
func (ro *ReturnOrder) BeforeCreate(tx *gorm.DB) error {
	if ro.ID == uuid.Nil {
		ro.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnOrder model
func (ReturnOrder) TableName() string {
	return "return_orders"
}

// ReturnOrderDetail is one return or exchange line. NewProductID is the
// replacement product and is required when Type is EXCHANGE.
type ReturnOrderDetail struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ReturnOrderID uuid.UUID         `gorm:"type:uuid;not null;index" json:"return_order_id"`
	ProductID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	NewProductID  *uuid.UUID        `gorm:"type:uuid" json:"new_product_id,omitempty"`
	Type          enum.ReturnType   `gorm:"default:0" json:"type"`
	Status        enum.ReturnStatus `gorm:"default:0" json:"status"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	RefundAmount  money.Amount      `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Reason        *string           `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	ReturnOrder ReturnOrder `gorm:"foreignKey:ReturnOrderID" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	NewProduct  *Product    `gorm:"foreignKey:NewProductID" json:"new_product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (rd ReturnOrderDetail) MarshalJSON() ([]byte, error) {
	type Alias ReturnOrderDetail
	return json.Marshal(&struct {
		Alias
		RefundAmount float64 `json:"refund_amount"`
	}{
		Alias:        Alias(rd),
		RefundAmount: rd.RefundAmount.Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new return order detail
func (rd *ReturnOrderDetail) BeforeCreate(tx *gorm.DB) error {
	if rd.ID == uuid.Nil {
		rd.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnOrderDetail model
func (ReturnOrderDetail) TableName() string {
	return "return_order_details"
}
