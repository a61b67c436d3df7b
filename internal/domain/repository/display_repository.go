package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// ShelfRepository defines the interface for display shelf data operations
type ShelfRepository interface {
	Create(ctx context.Context, shelf *entity.DisplayShelf) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error)
	GetWithProducts(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error)
	Update(ctx context.Context, shelf *entity.DisplayShelf) error
	List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.DisplayShelf, int64, error)
}

// DisplayProductRepository defines the interface for shelf placement data
// operations. Delete is a hard delete: an emptied placement row is removed
// after its quantity has been returned to the ledger.
type DisplayProductRepository interface {
	Create(ctx context.Context, placement *entity.DisplayProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DisplayProduct, error)
	GetByShelfAndProduct(ctx context.Context, shelfID, productID uuid.UUID) (*entity.DisplayProduct, error)
	ListByShelf(ctx context.Context, shelfID uuid.UUID) ([]entity.DisplayProduct, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.DisplayProduct, error)
	Save(ctx context.Context, placement *entity.DisplayProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DisplayLogRepository defines the interface for the append-only display
// audit trail
type DisplayLogRepository interface {
	Create(ctx context.Context, log *entity.DisplayLog) error
	ListByShelf(ctx context.Context, shelfID uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error)
}
