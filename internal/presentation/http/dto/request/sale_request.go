package request

import "github.com/google/uuid"

// SaleLineRequest represents one line of a sale
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice *float64  `json:"unit_price" binding:"omitempty,min=0"`
}

// CreateTransactionRequest represents a sale creation request
type CreateTransactionRequest struct {
	Note       *string           `json:"note"`
	PaidAmount float64           `json:"paid_amount" binding:"min=0"`
	Lines      []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AddDetailsRequest adds lines to an existing sale
type AddDetailsRequest struct {
	Lines []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateDetailRequest represents a sale line update request
type UpdateDetailRequest struct {
	Quantity  *int     `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,min=0"`
}

// EstimateRequest represents a price quote request
type EstimateRequest struct {
	Lines []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// TransactionFilterRequest represents transaction filter parameters
type TransactionFilterRequest struct {
	CashierID string `form:"cashier_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Completed *bool  `form:"completed"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
