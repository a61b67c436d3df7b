package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	infraRepo "github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// DisplayService manages shelf placements of displayed quantity. Every
// mutation appends one display log entry inside the same unit of work.
type DisplayService struct {
	uow           repository.UnitOfWorkManager
	shelfRepo     repository.ShelfRepository
	placementRepo repository.DisplayProductRepository
	logRepo       repository.DisplayLogRepository
	productRepo   repository.ProductRepository
	ledger        *InventoryLedger
}

// NewDisplayService creates a new display service
func NewDisplayService(
	uow repository.UnitOfWorkManager,
	shelfRepo repository.ShelfRepository,
	placementRepo repository.DisplayProductRepository,
	logRepo repository.DisplayLogRepository,
	productRepo repository.ProductRepository,
	ledger *InventoryLedger,
) *DisplayService {
	return &DisplayService{
		uow:           uow,
		shelfRepo:     shelfRepo,
		placementRepo: placementRepo,
		logRepo:       logRepo,
		productRepo:   productRepo,
		ledger:        ledger,
	}
}

// CreateShelfInput represents the create shelf input
type CreateShelfInput struct {
	Name     string
	Location *string
}

// CreateShelf creates a new display shelf
func (s *DisplayService) CreateShelf(ctx context.Context, input *CreateShelfInput) (*entity.DisplayShelf, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	shelf := &entity.DisplayShelf{
		TenantID: tenantID,
		Name:     input.Name,
		Location: input.Location,
		IsActive: true,
	}
	if err := s.shelfRepo.Create(ctx, shelf); err != nil {
		return nil, err
	}
	return shelf, nil
}

// GetShelf retrieves a shelf with its placements
func (s *DisplayService) GetShelf(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error) {
	shelf, err := s.shelfRepo.GetWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, apperror.NewNotFoundError("Shelf")
	}
	return shelf, nil
}

// ListShelves lists shelves
func (s *DisplayService) ListShelves(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.DisplayShelf], error) {
	shelves, total, err := s.shelfRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(shelves, pag), nil
}

// PlaceOnShelf moves qty units of a product from the available pool onto a
// shelf, creating the placement row. A second placement of the same
// product on the same shelf is a conflict; use AdjustQuantity instead.
func (s *DisplayService) PlaceOnShelf(ctx context.Context, productID, shelfID uuid.UUID, qty int, note *string) (*entity.DisplayProduct, error) {
	if qty <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	var placed *entity.DisplayProduct
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		shelf, err := s.getActiveShelf(ctx, shelfID)
		if err != nil {
			return err
		}

		product, err := s.getProduct(ctx, productID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return apperror.NewBadRequestError(product.Name + " cannot be displayed while inactive")
		}

		existing, err := s.placementRepo.GetByShelfAndProduct(ctx, shelf.ID, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError(product.Name + " is already on this shelf; adjust its quantity instead")
		}

		if err := s.ledger.MoveToDisplay(ctx, product, qty); err != nil {
			return err
		}

		placed = &entity.DisplayProduct{
			TenantID:  shelf.TenantID,
			ShelfID:   shelf.ID,
			ProductID: product.ID,
			Quantity:  qty,
			Status:    enum.DisplayStatusActive,
		}
		if err := s.placementRepo.Create(ctx, placed); err != nil {
			return err
		}

		return s.appendLog(ctx, placed, nil, enum.DisplayActionAdd, qty, note)
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// AdjustQuantity sets a placement to a new absolute quantity, reallocating
// the signed difference against the available pool.
func (s *DisplayService) AdjustQuantity(ctx context.Context, placementID uuid.UUID, newQty int, note *string) (*entity.DisplayProduct, error) {
	if newQty < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	var adjusted *entity.DisplayProduct
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		placement, err := s.getPlacement(ctx, placementID)
		if err != nil {
			return err
		}
		product, err := s.getProduct(ctx, placement.ProductID)
		if err != nil {
			return err
		}

		delta := newQty - placement.Quantity
		switch {
		case delta > 0:
			if err := s.ledger.MoveToDisplay(ctx, product, delta); err != nil {
				return err
			}
		case delta < 0:
			if err := s.ledger.MoveFromDisplayToStock(ctx, product, -delta); err != nil {
				return err
			}
		default:
			adjusted = placement
			return nil
		}

		placement.Quantity = newQty
		if err := s.placementRepo.Save(ctx, placement); err != nil {
			return err
		}
		adjusted = placement

		return s.appendLog(ctx, placement, nil, enum.DisplayActionAdjust, delta, note)
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

// ReduceQuantity returns qty units from a placement to the available pool.
// Reducing by the full placement quantity removes the placement entirely.
func (s *DisplayService) ReduceQuantity(ctx context.Context, placementID uuid.UUID, qty int, note *string) error {
	if qty <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	return s.uow.Do(ctx, func(ctx context.Context) error {
		placement, err := s.getPlacement(ctx, placementID)
		if err != nil {
			return err
		}
		if qty > placement.Quantity {
			return apperror.NewBadRequestError("Cannot return more than is on the shelf")
		}
		if qty == placement.Quantity {
			return s.removeFromShelf(ctx, placement, note)
		}

		product, err := s.getProduct(ctx, placement.ProductID)
		if err != nil {
			return err
		}
		if err := s.ledger.MoveFromDisplayToStock(ctx, product, qty); err != nil {
			return err
		}

		placement.Quantity -= qty
		if err := s.placementRepo.Save(ctx, placement); err != nil {
			return err
		}

		return s.appendLog(ctx, placement, nil, enum.DisplayActionReturnToInventory, -qty, note)
	})
}

// RemoveFromShelf returns a placement's entire remaining quantity to the
// available pool and deletes the placement row.
func (s *DisplayService) RemoveFromShelf(ctx context.Context, placementID uuid.UUID, note *string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		placement, err := s.getPlacement(ctx, placementID)
		if err != nil {
			return err
		}
		return s.removeFromShelf(ctx, placement, note)
	})
}

func (s *DisplayService) removeFromShelf(ctx context.Context, placement *entity.DisplayProduct, note *string) error {
	if placement.Quantity > 0 {
		product, err := s.getProduct(ctx, placement.ProductID)
		if err != nil {
			return err
		}
		if err := s.ledger.MoveFromDisplayToStock(ctx, product, placement.Quantity); err != nil {
			return err
		}
	}

	if err := s.appendLog(ctx, placement, nil, enum.DisplayActionReturnToInventory, -placement.Quantity, note); err != nil {
		return err
	}
	return s.placementRepo.Delete(ctx, placement.ID)
}

// MoveBetweenShelves moves qty units (default: all) of a placement to
// another shelf. The quantity never leaves display, so no ledger call is
// made; the total across both placements is conserved by construction.
// A source placement emptied by the move is kept with inactive status.
func (s *DisplayService) MoveBetweenShelves(ctx context.Context, placementID, targetShelfID uuid.UUID, qty *int, note *string) (*entity.DisplayProduct, error) {
	var moved *entity.DisplayProduct
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		source, err := s.getPlacement(ctx, placementID)
		if err != nil {
			return err
		}
		if source.ShelfID == targetShelfID {
			return apperror.NewBadRequestError("Source and target shelf are the same")
		}

		target, err := s.getActiveShelf(ctx, targetShelfID)
		if err != nil {
			return err
		}

		moveQty := source.Quantity
		if qty != nil {
			moveQty = *qty
		}
		if moveQty <= 0 {
			return apperror.NewBadRequestError("Quantity must be positive")
		}
		if moveQty > source.Quantity {
			return apperror.NewBadRequestError("Cannot move more than is on the shelf")
		}

		existing, err := s.placementRepo.GetByShelfAndProduct(ctx, target.ID, source.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Quantity += moveQty
			existing.Status = enum.DisplayStatusActive
			if err := s.placementRepo.Save(ctx, existing); err != nil {
				return err
			}
			moved = existing
		} else {
			moved = &entity.DisplayProduct{
				TenantID:  source.TenantID,
				ShelfID:   target.ID,
				ProductID: source.ProductID,
				Quantity:  moveQty,
				Status:    source.Status,
				Position:  source.Position,
			}
			if err := s.placementRepo.Create(ctx, moved); err != nil {
				return err
			}
		}

		source.Quantity -= moveQty
		if source.Quantity == 0 {
			// Retained with inactive status: a moved-away record is not
			// the same as a product that was never placed.
			source.Status = enum.DisplayStatusInactive
		}
		if err := s.placementRepo.Save(ctx, source); err != nil {
			return err
		}

		return s.appendLog(ctx, source, &target.ID, enum.DisplayActionMove, moveQty, note)
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// DeactivateShelf returns every placement's quantity to the available pool
// and marks the shelf inactive. Shelves that have held products are never
// hard-deleted.
func (s *DisplayService) DeactivateShelf(ctx context.Context, shelfID uuid.UUID, note *string) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		shelf, err := s.shelfRepo.GetByID(ctx, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil {
			return apperror.NewNotFoundError("Shelf")
		}
		if !shelf.IsActive {
			return apperror.NewBadRequestError("Shelf is already inactive")
		}

		placements, err := s.placementRepo.ListByShelf(ctx, shelf.ID)
		if err != nil {
			return err
		}
		for i := range placements {
			placement := &placements[i]
			if placement.Quantity > 0 {
				product, err := s.getProduct(ctx, placement.ProductID)
				if err != nil {
					return err
				}
				if err := s.ledger.MoveFromDisplayToStock(ctx, product, placement.Quantity); err != nil {
					return err
				}
			}
			if err := s.appendLog(ctx, placement, nil, enum.DisplayActionRemove, -placement.Quantity, note); err != nil {
				return err
			}
			if err := s.placementRepo.Delete(ctx, placement.ID); err != nil {
				return err
			}
		}

		shelf.IsActive = false
		return s.shelfRepo.Update(ctx, shelf)
	})
}

// ListShelfLogs returns the audit trail for one shelf
func (s *DisplayService) ListShelfLogs(ctx context.Context, shelfID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DisplayLog], error) {
	logs, total, err := s.logRepo.ListByShelf(ctx, shelfID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(logs, pag), nil
}

// ListProductLogs returns the audit trail for one product across shelves
func (s *DisplayService) ListProductLogs(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DisplayLog], error) {
	logs, total, err := s.logRepo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(logs, pag), nil
}

func (s *DisplayService) appendLog(ctx context.Context, placement *entity.DisplayProduct, targetShelfID *uuid.UUID, action enum.DisplayAction, change int, note *string) error {
	return s.logRepo.Create(ctx, &entity.DisplayLog{
		TenantID:       placement.TenantID,
		ShelfID:        placement.ShelfID,
		TargetShelfID:  targetShelfID,
		ProductID:      placement.ProductID,
		ActorID:        actorIDFrom(ctx),
		Action:         action,
		QuantityChange: change,
		Note:           note,
	})
}

func (s *DisplayService) getActiveShelf(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error) {
	shelf, err := s.shelfRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, apperror.NewNotFoundError("Shelf")
	}
	if !shelf.IsActive {
		return nil, apperror.NewBadRequestError("Shelf is inactive")
	}
	return shelf, nil
}

func (s *DisplayService) getPlacement(ctx context.Context, id uuid.UUID) (*entity.DisplayProduct, error) {
	placement, err := s.placementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if placement == nil {
		return nil, apperror.NewNotFoundError("Shelf placement")
	}
	return placement, nil
}

func (s *DisplayService) getProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
