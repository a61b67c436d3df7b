package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"required,min=1,max=255"`
	Author        *string    `json:"author" binding:"omitempty,max=255"`
	Publisher     *string    `json:"publisher" binding:"omitempty,max=255"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	CostPrice     float64    `json:"cost_price" binding:"min=0"`
	StockQuantity int        `json:"stock_quantity" binding:"min=0"`
	Notes         *string    `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Author       *string    `json:"author" binding:"omitempty,max=255"`
	Publisher    *string    `json:"publisher" binding:"omitempty,max=255"`
	SellingPrice *float64   `json:"selling_price" binding:"omitempty,min=0"`
	IsActive     *bool      `json:"is_active"`
	Notes        *string    `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=255"`
	TaxRatePercent float64 `json:"tax_rate_percent" binding:"min=0,max=100"`
}

// ReceiveStockRequest represents an inventory receiving request
type ReceiveStockRequest struct {
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	CostPrice *float64 `json:"cost_price" binding:"omitempty,min=0"`
	Note      *string  `json:"note"`
}
