package request

import "github.com/google/uuid"

// CreateTenantRequest represents a store creation request
type CreateTenantRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// AddMemberRequest represents a staff membership request
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required,oneof=owner manager cashier"`
}
