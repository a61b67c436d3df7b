package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// InventoryRepository defines the interface for inventory data operations.
// Counter mutations must go through the ledger service; the repository only
// persists whole rows.
type InventoryRepository interface {
	Create(ctx context.Context, inventory *entity.Inventory) error
	GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Inventory, error)
	Save(ctx context.Context, inventory *entity.Inventory) error
}

// InventoryLogRepository defines the interface for the append-only stock
// audit trail. Logs are created and queried, never updated or deleted.
type InventoryLogRepository interface {
	Create(ctx context.Context, log *entity.InventoryLog) error
	ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error)
}
