package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// ReturnOrderRepository defines the interface for return order data
// operations
type ReturnOrderRepository interface {
	Create(ctx context.Context, order *entity.ReturnOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error)
	Save(ctx context.Context, order *entity.ReturnOrder) error
	List(ctx context.Context, params *ReturnOrderFilterParams) ([]entity.ReturnOrder, int64, error)
}

// ReturnOrderFilterParams contains filtering parameters for return order
// queries
type ReturnOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.ReturnStatus
	CustomerID *uuid.UUID
}

// ReturnOrderDetailRepository defines the interface for return order line
// data operations
type ReturnOrderDetailRepository interface {
	Create(ctx context.Context, detail *entity.ReturnOrderDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReturnOrderDetail, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.ReturnOrderDetail, error)
	Save(ctx context.Context, detail *entity.ReturnOrderDetail) error
	Delete(ctx context.Context, id uuid.UUID) error
}
