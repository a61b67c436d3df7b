package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	"github.com/ngocanhdo/bookstore-api/internal/infrastructure/cache"
	infraRepo "github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
)

// ProductService manages the book catalog. Each product owns one
// inventory row created with it; stock counters on that row are only ever
// moved by ledger operations, never edited through this service.
type ProductService struct {
	uow           repository.UnitOfWorkManager
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	inventoryRepo repository.InventoryRepository
	productCache  cache.ProductCache
}

// NewProductService creates a new product service
func NewProductService(
	uow repository.UnitOfWorkManager,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	inventoryRepo repository.InventoryRepository,
	productCache cache.ProductCache,
) *ProductService {
	return &ProductService{
		uow:           uow,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		productCache:  productCache,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	CategoryID    *uuid.UUID
	Author        *string
	Publisher     *string
	SellingPrice  float64
	CostPrice     float64
	StockQuantity int
	Notes         *string
}

// Create creates a product together with its inventory row. The initial
// stock is fully available and nothing is on display.
func (s *ProductService) Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.SellingPrice < 0 || input.CostPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.StockQuantity < 0 {
		return nil, apperror.NewBadRequestError("Stock quantity cannot be negative")
	}

	var created *entity.Product
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if input.CategoryID != nil {
			category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return apperror.NewNotFoundError("Category")
			}
		}

		product := &entity.Product{
			TenantID:     tenantID,
			CategoryID:   input.CategoryID,
			Name:         input.Name,
			Slug:         utils.Slugify(input.Name),
			Code:         utils.GenerateProductCode(),
			Author:       input.Author,
			Publisher:    input.Publisher,
			SellingPrice: money.FromFloat(input.SellingPrice),
			IsActive:     true,
			Notes:        input.Notes,
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			return err
		}

		inventory := &entity.Inventory{
			TenantID:          tenantID,
			ProductID:         product.ID,
			StockQuantity:     input.StockQuantity,
			AvailableQuantity: input.StockQuantity,
			CostPrice:         money.FromFloat(input.CostPrice),
		}
		if err := s.inventoryRepo.Create(ctx, inventory); err != nil {
			return err
		}

		product.Inventory = inventory
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get retrieves a product, trying the cache first. Cache failures fall
// back to the database.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	tenantID, _ := infraRepo.GetTenantID(ctx)

	if cached, err := s.productCache.Get(ctx, tenantID, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Catalog data only; live stock counters are never served from cache.
	copy := *product
	copy.Inventory = nil
	_ = s.productCache.Set(ctx, tenantID, &copy)

	return product, nil
}

// GetBySlug retrieves a product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name         *string
	CategoryID   *uuid.UUID
	Author       *string
	Publisher    *string
	SellingPrice *float64
	IsActive     *bool
	Notes        *string
}

// Update updates catalog fields of a product and invalidates its cache
// entry
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	tenantID, _ := infraRepo.GetTenantID(ctx)

	var updated *entity.Product
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		if input.Name != nil {
			product.Name = *input.Name
			product.Slug = utils.Slugify(*input.Name)
		}
		if input.CategoryID != nil {
			category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return apperror.NewNotFoundError("Category")
			}
			product.CategoryID = input.CategoryID
		}
		if input.Author != nil {
			product.Author = input.Author
		}
		if input.Publisher != nil {
			product.Publisher = input.Publisher
		}
		if input.SellingPrice != nil {
			if *input.SellingPrice < 0 {
				return apperror.NewBadRequestError("Prices cannot be negative")
			}
			product.SellingPrice = money.FromFloat(*input.SellingPrice)
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.Notes != nil {
			product.Notes = input.Notes
		}

		if err := s.productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.productCache.Invalidate(ctx, tenantID, id)
	return updated, nil
}

// Delete soft-deletes a product. Products on display or with stock still
// owned cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, _ := infraRepo.GetTenantID(ctx)

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		inventory, err := s.inventoryRepo.GetByProductID(ctx, id)
		if err != nil {
			return err
		}
		if inventory != nil && inventory.DisplayQuantity > 0 {
			return apperror.NewBadRequestError(product.Name + " is still on display")
		}

		return s.productRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	_ = s.productCache.Invalidate(ctx, tenantID, id)
	return nil
}

// List lists products
func (s *ProductService) List(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name           string
	TaxRatePercent float64
}

// CreateCategory creates a category
func (s *ProductService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.TaxRatePercent < 0 {
		return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
	}

	category := &entity.Category{
		TenantID:       tenantID,
		Name:           input.Name,
		Slug:           utils.Slugify(input.Name),
		TaxRatePercent: input.TaxRatePercent,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists categories
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// ReceiveStockInput represents an inventory receiving input
type ReceiveStockInput struct {
	ProductID uuid.UUID
	Quantity  int
	CostPrice *float64
	Note      *string
}

// ReceiveStock records newly received units, growing both the stock and
// available counters.
func (s *ProductService) ReceiveStock(ctx context.Context, input *ReceiveStockInput, ledger *InventoryLedger) (*entity.Inventory, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	var received *entity.Inventory
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		inventory, err := ledger.ReceiveStock(ctx, product, input.Quantity, input.Note)
		if err != nil {
			return err
		}
		if input.CostPrice != nil {
			if *input.CostPrice < 0 {
				return apperror.NewBadRequestError("Prices cannot be negative")
			}
			inventory.CostPrice = money.FromFloat(*input.CostPrice)
			if err := s.inventoryRepo.Save(ctx, inventory); err != nil {
				return err
			}
		}
		received = inventory
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}
