package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Details").Preload("Details.Product").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) Save(ctx context.Context, transaction *entity.Transaction) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Omit("Details").
		Save(transaction).Error
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.Transaction{}).
		Scopes(TenantScope(ctx))

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if params.Completed != nil {
		query = query.Where("is_completed = ?", *params.Completed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Details").
		Order("created_at DESC").
		Find(&transactions).Error

	return transactions, total, err
}

type transactionDetailRepository struct {
	db *gorm.DB
}

// NewTransactionDetailRepository creates a new transaction detail
// repository
func NewTransactionDetailRepository(db *gorm.DB) domainRepo.TransactionDetailRepository {
	return &transactionDetailRepository{db: db}
}

func (r *transactionDetailRepository) Create(ctx context.Context, detail *entity.TransactionDetail) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(detail).Error
}

func (r *transactionDetailRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TransactionDetail, error) {
	var detail entity.TransactionDetail
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &detail, err
}

func (r *transactionDetailRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionDetail, error) {
	var details []entity.TransactionDetail
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}

func (r *transactionDetailRepository) Save(ctx context.Context, detail *entity.TransactionDetail) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(detail).Error
}
