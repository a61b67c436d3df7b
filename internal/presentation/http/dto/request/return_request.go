package request

import "github.com/google/uuid"

// ReturnDetailRequest represents one return or exchange line
type ReturnDetailRequest struct {
	ProductID    uuid.UUID  `json:"product_id" binding:"required"`
	NewProductID *uuid.UUID `json:"new_product_id"`
	Type         int        `json:"type" binding:"min=0,max=1"`
	Quantity     int        `json:"quantity" binding:"required,min=1"`
	RefundAmount float64    `json:"refund_amount" binding:"min=0"`
	Reason       *string    `json:"reason"`
}

// CreateReturnOrderRequest represents a return order creation request
type CreateReturnOrderRequest struct {
	TransactionID uuid.UUID             `json:"transaction_id" binding:"required"`
	CustomerID    uuid.UUID             `json:"customer_id" binding:"required"`
	Note          *string               `json:"note"`
	Details       []ReturnDetailRequest `json:"details" binding:"omitempty,dive"`
}

// UpdateReturnDetailRequest represents a return line update request
type UpdateReturnDetailRequest struct {
	Quantity     *int     `json:"quantity" binding:"omitempty,min=1"`
	RefundAmount *float64 `json:"refund_amount" binding:"omitempty,min=0"`
	Reason       *string  `json:"reason"`
}

// RejectReturnOrderRequest carries the optional rejection note
type RejectReturnOrderRequest struct {
	Note *string `json:"note"`
}

// ReturnOrderFilterRequest represents return order filter parameters
type ReturnOrderFilterRequest struct {
	Status     *int   `form:"status"`
	CustomerID string `form:"customer_id"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
