package request

import "github.com/google/uuid"

// CreateShelfRequest represents a shelf creation request
type CreateShelfRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Location *string `json:"location" binding:"omitempty,max=500"`
}

// PlaceOnShelfRequest places a product on a shelf
type PlaceOnShelfRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Note      *string   `json:"note"`
}

// AdjustQuantityRequest sets a placement to a new absolute quantity
type AdjustQuantityRequest struct {
	Quantity int     `json:"quantity" binding:"min=0"`
	Note     *string `json:"note"`
}

// ReduceQuantityRequest returns part of a placement to inventory
type ReduceQuantityRequest struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Note     *string `json:"note"`
}

// MoveBetweenShelvesRequest moves a placement to another shelf
type MoveBetweenShelvesRequest struct {
	TargetShelfID uuid.UUID `json:"target_shelf_id" binding:"required"`
	Quantity      *int      `json:"quantity" binding:"omitempty,min=1"`
	Note          *string   `json:"note"`
}

// RemoveNoteRequest carries the optional note of a removal
type RemoveNoteRequest struct {
	Note *string `json:"note"`
}
