package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// TransactionRepository defines the interface for sale transaction data
// operations
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Save(ctx context.Context, transaction *entity.Transaction) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction
// queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	CashierID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Completed  *bool
}

// TransactionDetailRepository defines the interface for transaction line
// data operations
type TransactionDetailRepository interface {
	Create(ctx context.Context, detail *entity.TransactionDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TransactionDetail, error)
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionDetail, error)
	Save(ctx context.Context, detail *entity.TransactionDetail) error
}
