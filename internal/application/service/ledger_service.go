package service

import (
	"context"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	infraRepo "github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
)

// Inventory log actions recorded by the ledger.
const (
	inventoryActionReserve           = "RESERVE_FOR_SALE"
	inventoryActionRelease           = "RELEASE_FROM_SALE"
	inventoryActionMoveToDisplay     = "MOVE_TO_DISPLAY"
	inventoryActionReturnFromDisplay = "RETURN_FROM_DISPLAY"
	inventoryActionReceive           = "RECEIVE_STOCK"
)

// InventoryLedger guards the three stock counters of a product's
// inventory: stock, on display, and available for sale. Every mutation of
// those counters goes through one of its four operations, runs inside the
// caller's unit of work, and appends one inventory log entry.
//
// Each operation is a read-then-conditional-write on a single inventory
// row. The window between the availability check and the write carries no
// row lock or version check; two concurrent reservations can both pass the
// check before either commits. Known limitation, kept as-is rather than
// papered over with locking that would change observable behavior.
type InventoryLedger struct {
	inventoryRepo repository.InventoryRepository
	logRepo       repository.InventoryLogRepository
}

// NewInventoryLedger creates a new inventory ledger
func NewInventoryLedger(
	inventoryRepo repository.InventoryRepository,
	logRepo repository.InventoryLogRepository,
) *InventoryLedger {
	return &InventoryLedger{
		inventoryRepo: inventoryRepo,
		logRepo:       logRepo,
	}
}

// ReserveForSale decrements the available quantity to reflect a committed
// sale. Stock quantity is untouched: the unit is still owned until the
// separate stock write-off flow runs. Fails with InsufficientStock when
// fewer than qty units are available, naming the product and the remaining
// quantity.
func (l *InventoryLedger) ReserveForSale(ctx context.Context, product *entity.Product, qty int) error {
	if qty <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	inventory, err := l.getInventory(ctx, product)
	if err != nil {
		return err
	}

	if inventory.AvailableQuantity < qty {
		return apperror.NewInsufficientStockError(product.Name, inventory.AvailableQuantity)
	}

	inventory.AvailableQuantity -= qty
	if err := l.inventoryRepo.Save(ctx, inventory); err != nil {
		return err
	}

	return l.appendLog(ctx, inventory, inventoryActionReserve, -qty)
}

// ReleaseFromSale returns qty units to the available pool, used when a
// sale line shrinks or a return is processed.
func (l *InventoryLedger) ReleaseFromSale(ctx context.Context, product *entity.Product, qty int) error {
	if qty <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	inventory, err := l.getInventory(ctx, product)
	if err != nil {
		return err
	}

	inventory.AvailableQuantity += qty
	if err := l.inventoryRepo.Save(ctx, inventory); err != nil {
		return err
	}

	return l.appendLog(ctx, inventory, inventoryActionRelease, qty)
}

// MoveToDisplay reallocates qty units from the available pool to the
// display pool. The sum of the two counters is unchanged.
func (l *InventoryLedger) MoveToDisplay(ctx context.Context, product *entity.Product, qty int) error {
	if qty <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	inventory, err := l.getInventory(ctx, product)
	if err != nil {
		return err
	}

	if inventory.AvailableQuantity < qty {
		return apperror.NewInsufficientStockError(product.Name, inventory.AvailableQuantity)
	}

	inventory.AvailableQuantity -= qty
	inventory.DisplayQuantity += qty
	if err := l.inventoryRepo.Save(ctx, inventory); err != nil {
		return err
	}

	return l.appendLog(ctx, inventory, inventoryActionMoveToDisplay, -qty)
}

// MoveFromDisplayToStock reallocates qty units from the display pool back
// to the available pool.
func (l *InventoryLedger) MoveFromDisplayToStock(ctx context.Context, product *entity.Product, qty int) error {
	if qty <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	inventory, err := l.getInventory(ctx, product)
	if err != nil {
		return err
	}

	if inventory.DisplayQuantity < qty {
		return apperror.NewBadRequestError("Display quantity is less than the requested quantity")
	}

	inventory.DisplayQuantity -= qty
	inventory.AvailableQuantity += qty
	if err := l.inventoryRepo.Save(ctx, inventory); err != nil {
		return err
	}

	return l.appendLog(ctx, inventory, inventoryActionReturnFromDisplay, qty)
}

// ReceiveStock records qty newly received units, growing stock and
// available together.
func (l *InventoryLedger) ReceiveStock(ctx context.Context, product *entity.Product, qty int, note *string) (*entity.Inventory, error) {
	if qty <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	inventory, err := l.getInventory(ctx, product)
	if err != nil {
		return nil, err
	}

	inventory.StockQuantity += qty
	inventory.AvailableQuantity += qty
	if err := l.inventoryRepo.Save(ctx, inventory); err != nil {
		return nil, err
	}

	if err := l.appendLogNote(ctx, inventory, inventoryActionReceive, qty, note); err != nil {
		return nil, err
	}
	return inventory, nil
}

func (l *InventoryLedger) getInventory(ctx context.Context, product *entity.Product) (*entity.Inventory, error) {
	inventory, err := l.inventoryRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if inventory == nil {
		return nil, apperror.NewNotFoundError("Inventory for " + product.Name)
	}
	return inventory, nil
}

func (l *InventoryLedger) appendLog(ctx context.Context, inventory *entity.Inventory, action string, change int) error {
	return l.appendLogNote(ctx, inventory, action, change, nil)
}

func (l *InventoryLedger) appendLogNote(ctx context.Context, inventory *entity.Inventory, action string, change int, note *string) error {
	tenantID, _ := infraRepo.GetTenantID(ctx)
	return l.logRepo.Create(ctx, &entity.InventoryLog{
		TenantID:       tenantID,
		ProductID:      inventory.ProductID,
		ActorID:        actorIDFrom(ctx),
		QuantityChange: change,
		Action:         action,
		Note:           note,
	})
}
