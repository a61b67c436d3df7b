package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, inventory *entity.Inventory) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(inventory).Error
}

func (r *inventoryRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Inventory, error) {
	var inventory entity.Inventory
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&inventory, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inventory, err
}

func (r *inventoryRepository) Save(ctx context.Context, inventory *entity.Inventory) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(inventory).Error
}

type inventoryLogRepository struct {
	db *gorm.DB
}

// NewInventoryLogRepository creates a new inventory log repository
func NewInventoryLogRepository(db *gorm.DB) domainRepo.InventoryLogRepository {
	return &inventoryLogRepository{db: db}
}

func (r *inventoryLogRepository) Create(ctx context.Context, log *entity.InventoryLog) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(log).Error
}

func (r *inventoryLogRepository) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	var logs []entity.InventoryLog
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.InventoryLog{}).
		Scopes(TenantScope(ctx)).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}
