package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/pkg/money"
)

// Transaction represents a point-of-sale transaction.
//
// Invariant: TotalAmount equals the sum of its details' TotalPrice, and
// FinalAmount equals TotalAmount + TaxAmount. Totals are always recomputed
// from the full set of lines, never adjusted incrementally.
type Transaction struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CashierID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"cashier_id"`
	InvoiceNo    string         `gorm:"size:100;unique;not null" json:"invoice_no"`
	TotalAmount  money.Amount   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount    money.Amount   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	FinalAmount  money.Amount   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaidAmount   money.Amount   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ChangeAmount money.Amount   `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Note         *string        `gorm:"type:text" json:"note,omitempty"`
	IsCompleted  bool           `gorm:"default:false" json:"is_completed"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant  Tenant              `gorm:"foreignKey:TenantID" json:"-"`
	Cashier User                `gorm:"foreignKey:CashierID" json:"-"`
	Details []TransactionDetail `gorm:"foreignKey:TransactionID" json:"details,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount  float64 `json:"total_amount"`
		TaxAmount    float64 `json:"tax_amount"`
		FinalAmount  float64 `json:"final_amount"`
		PaidAmount   float64 `json:"paid_amount"`
		ChangeAmount float64 `json:"change_amount"`
	}{
		Alias:        Alias(t),
		TotalAmount:  t.TotalAmount.Float64(),
		TaxAmount:    t.TaxAmount.Float64(),
		FinalAmount:  t.FinalAmount.Float64(),
		PaidAmount:   t.PaidAmount.Float64(),
		ChangeAmount: t.ChangeAmount.Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionDetail is one line of a transaction. A transaction holds at
// most one line per product; adding the same product again merges into the
// existing line.
type TransactionDetail struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	TransactionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	UnitPrice     money.Amount   `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalPrice    money.Amount   `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (td TransactionDetail) MarshalJSON() ([]byte, error) {
	type Alias TransactionDetail
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(td),
		UnitPrice:  td.UnitPrice.Float64(),
		TotalPrice: td.TotalPrice.Float64(),
	})
}

// BeforeCreate generates a UUID before creating a new transaction detail
func (td *TransactionDetail) BeforeCreate(tx *gorm.DB) error {
	if td.ID == uuid.Nil {
		td.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionDetail model
func (TransactionDetail) TableName() string {
	return "transaction_details"
}
