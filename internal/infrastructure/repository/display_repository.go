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

type shelfRepository struct {
	db *gorm.DB
}

// NewShelfRepository creates a new shelf repository
func NewShelfRepository(db *gorm.DB) domainRepo.ShelfRepository {
	return &shelfRepository{db: db}
}

func (r *shelfRepository) Create(ctx context.Context, shelf *entity.DisplayShelf) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(shelf).Error
}

func (r *shelfRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error) {
	var shelf entity.DisplayShelf
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&shelf, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shelf, err
}

func (r *shelfRepository) GetWithProducts(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error) {
	var shelf entity.DisplayShelf
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Products").Preload("Products.Product").
		First(&shelf, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shelf, err
}

func (r *shelfRepository) Update(ctx context.Context, shelf *entity.DisplayShelf) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(shelf).Error
}

func (r *shelfRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.DisplayShelf, int64, error) {
	var shelves []entity.DisplayShelf
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.DisplayShelf{}).
		Scopes(TenantScope(ctx))

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&shelves).Error

	return shelves, total, err
}

type displayProductRepository struct {
	db *gorm.DB
}

// NewDisplayProductRepository creates a new shelf placement repository
func NewDisplayProductRepository(db *gorm.DB) domainRepo.DisplayProductRepository {
	return &displayProductRepository{db: db}
}

func (r *displayProductRepository) Create(ctx context.Context, placement *entity.DisplayProduct) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(placement).Error
}

func (r *displayProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DisplayProduct, error) {
	var placement entity.DisplayProduct
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&placement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &placement, err
}

func (r *displayProductRepository) GetByShelfAndProduct(ctx context.Context, shelfID, productID uuid.UUID) (*entity.DisplayProduct, error) {
	var placement entity.DisplayProduct
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&placement, "shelf_id = ? AND product_id = ?", shelfID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &placement, err
}

func (r *displayProductRepository) ListByShelf(ctx context.Context, shelfID uuid.UUID) ([]entity.DisplayProduct, error) {
	var placements []entity.DisplayProduct
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Product").
		Where("shelf_id = ?", shelfID).
		Order("position ASC").
		Find(&placements).Error
	return placements, err
}

func (r *displayProductRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.DisplayProduct, error) {
	var placements []entity.DisplayProduct
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("product_id = ?", productID).
		Find(&placements).Error
	return placements, err
}

func (r *displayProductRepository) Save(ctx context.Context, placement *entity.DisplayProduct) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(placement).Error
}

// Delete removes the placement row permanently. Emptied placements carry
// no history; the display log is the audit trail.
func (r *displayProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Unscoped().
		Delete(&entity.DisplayProduct{}, "id = ?", id).Error
}

type displayLogRepository struct {
	db *gorm.DB
}

// NewDisplayLogRepository creates a new display log repository
func NewDisplayLogRepository(db *gorm.DB) domainRepo.DisplayLogRepository {
	return &displayLogRepository{db: db}
}

func (r *displayLogRepository) Create(ctx context.Context, log *entity.DisplayLog) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(log).Error
}

func (r *displayLogRepository) ListByShelf(ctx context.Context, shelfID uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error) {
	return r.list(ctx, "shelf_id = ?", shelfID, params)
}

func (r *displayLogRepository) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error) {
	return r.list(ctx, "product_id = ?", productID, params)
}

func (r *displayLogRepository) list(ctx context.Context, cond string, id uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error) {
	var logs []entity.DisplayLog
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).
		Model(&entity.DisplayLog{}).
		Scopes(TenantScope(ctx)).
		Where(cond, id)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}
