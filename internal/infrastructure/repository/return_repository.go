package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
)

type returnOrderRepository struct {
	db *gorm.DB
}

// NewReturnOrderRepository creates a new return order repository
func NewReturnOrderRepository(db *gorm.DB) domainRepo.ReturnOrderRepository {
	return &returnOrderRepository{db: db}
}

func (r *returnOrderRepository) Create(ctx context.Context, order *entity.ReturnOrder) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(order).Error
}

func (r *returnOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error) {
	var order entity.ReturnOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *returnOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error) {
	var order entity.ReturnOrder
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").
		Preload("Details").Preload("Details.Product").Preload("Details.NewProduct").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *returnOrderRepository) Save(ctx context.Context, order *entity.ReturnOrder) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Omit("Details").
		Save(order).Error
}

func (r *returnOrderRepository) List(ctx context.Context, params *domainRepo.ReturnOrderFilterParams) ([]entity.ReturnOrder, int64, error) {
	var orders []entity.ReturnOrder
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.ReturnOrder{}).
		Scopes(TenantScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").Preload("Details").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

type returnOrderDetailRepository struct {
	db *gorm.DB
}

// NewReturnOrderDetailRepository creates a new return order detail
// repository
func NewReturnOrderDetailRepository(db *gorm.DB) domainRepo.ReturnOrderDetailRepository {
	return &returnOrderDetailRepository{db: db}
}

func (r *returnOrderDetailRepository) Create(ctx context.Context, detail *entity.ReturnOrderDetail) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(detail).Error
}

func (r *returnOrderDetailRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReturnOrderDetail, error) {
	var detail entity.ReturnOrderDetail
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &detail, err
}

func (r *returnOrderDetailRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.ReturnOrderDetail, error) {
	var details []entity.ReturnOrderDetail
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("return_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}

func (r *returnOrderDetailRepository) Save(ctx context.Context, detail *entity.ReturnOrderDetail) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(detail).Error
}

func (r *returnOrderDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Delete(&entity.ReturnOrderDetail{}, "id = ?", id).Error
}
