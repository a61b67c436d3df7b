package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	infraRepo "github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// ReturnService drives the return/exchange workflow. An order moves
// PENDING to APPROVED or REJECTED exactly once; its details can only be
// edited while the order is still PENDING.
type ReturnService struct {
	uow             repository.UnitOfWorkManager
	orderRepo       repository.ReturnOrderRepository
	detailRepo      repository.ReturnOrderDetailRepository
	transactionRepo repository.TransactionRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	ledger          *InventoryLedger
}

// NewReturnService creates a new return service
func NewReturnService(
	uow repository.UnitOfWorkManager,
	orderRepo repository.ReturnOrderRepository,
	detailRepo repository.ReturnOrderDetailRepository,
	transactionRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	ledger *InventoryLedger,
) *ReturnService {
	return &ReturnService{
		uow:             uow,
		orderRepo:       orderRepo,
		detailRepo:      detailRepo,
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		ledger:          ledger,
	}
}

// ReturnDetailInput represents one return or exchange line
type ReturnDetailInput struct {
	ProductID    uuid.UUID
	NewProductID *uuid.UUID
	Type         enum.ReturnType
	Quantity     int
	RefundAmount float64
	Reason       *string
}

// CreateReturnOrderInput represents the create return order input
type CreateReturnOrderInput struct {
	TransactionID uuid.UUID
	CustomerID    uuid.UUID
	Note          *string
	Details       []ReturnDetailInput
}

// CreateOrder opens a PENDING return order against a completed
// transaction. Any details supplied up front go through the same
// validation as AddDetail.
func (s *ReturnService) CreateOrder(ctx context.Context, input *CreateReturnOrderInput) (*entity.ReturnOrder, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	var created *entity.ReturnOrder
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		transaction, err := s.transactionRepo.GetByID(ctx, input.TransactionID)
		if err != nil {
			return err
		}
		if transaction == nil {
			return apperror.NewNotFoundError("Transaction")
		}
		if !transaction.IsCompleted {
			return apperror.NewBadRequestError("Returns are only accepted against completed transactions")
		}

		customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		order := &entity.ReturnOrder{
			TenantID:      tenantID,
			TransactionID: transaction.ID,
			CustomerID:    customer.ID,
			Status:        enum.ReturnStatusPending,
			Note:          input.Note,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for i := range input.Details {
			if _, err := s.addDetail(ctx, order, &input.Details[i]); err != nil {
				return err
			}
		}

		if err := s.recomputeRefund(ctx, order); err != nil {
			return err
		}

		created, err = s.orderRepo.GetWithDetails(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddDetail appends one line to a PENDING order and recomputes the refund
// total.
func (s *ReturnService) AddDetail(ctx context.Context, orderID uuid.UUID, input *ReturnDetailInput) (*entity.ReturnOrderDetail, error) {
	var added *entity.ReturnOrderDetail
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		order, err := s.getPendingOrder(ctx, orderID)
		if err != nil {
			return err
		}

		added, err = s.addDetail(ctx, order, input)
		if err != nil {
			return err
		}

		return s.recomputeRefund(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *ReturnService) addDetail(ctx context.Context, order *entity.ReturnOrder, input *ReturnDetailInput) (*entity.ReturnOrderDetail, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}
	if input.RefundAmount < 0 {
		return nil, apperror.NewBadRequestError("Refund amount cannot be negative")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	detail := &entity.ReturnOrderDetail{
		TenantID:      order.TenantID,
		ReturnOrderID: order.ID,
		ProductID:     product.ID,
		Type:          input.Type,
		Status:        enum.ReturnStatusPending,
		Quantity:      input.Quantity,
		RefundAmount:  money.FromFloat(input.RefundAmount),
		Reason:        input.Reason,
	}

	if input.Type == enum.ReturnTypeExchange {
		if input.NewProductID == nil {
			return nil, apperror.NewBadRequestError("Exchange lines require a replacement product")
		}
		replacement, err := s.productRepo.GetByID(ctx, *input.NewProductID)
		if err != nil {
			return nil, err
		}
		if replacement == nil {
			return nil, apperror.NewNotFoundError("Replacement product")
		}
		detail.NewProductID = &replacement.ID
	}

	if err := s.detailRepo.Create(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateReturnDetailInput represents the update return detail input
type UpdateReturnDetailInput struct {
	Quantity     *int
	RefundAmount *float64
	Reason       *string
}

// UpdateDetail edits one line of a PENDING order and recomputes the
// refund total.
func (s *ReturnService) UpdateDetail(ctx context.Context, orderID, detailID uuid.UUID, input *UpdateReturnDetailInput) (*entity.ReturnOrderDetail, error) {
	var updated *entity.ReturnOrderDetail
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		order, err := s.getPendingOrder(ctx, orderID)
		if err != nil {
			return err
		}

		detail, err := s.getPendingDetail(ctx, order, detailID)
		if err != nil {
			return err
		}

		if input.Quantity != nil {
			if *input.Quantity <= 0 {
				return apperror.NewBadRequestError("Quantity must be positive")
			}
			detail.Quantity = *input.Quantity
		}
		if input.RefundAmount != nil {
			if *input.RefundAmount < 0 {
				return apperror.NewBadRequestError("Refund amount cannot be negative")
			}
			detail.RefundAmount = money.FromFloat(*input.RefundAmount)
		}
		if input.Reason != nil {
			detail.Reason = input.Reason
		}

		if err := s.detailRepo.Save(ctx, detail); err != nil {
			return err
		}
		updated = detail

		return s.recomputeRefund(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteDetail removes one line from a PENDING order and recomputes the
// refund total.
func (s *ReturnService) DeleteDetail(ctx context.Context, orderID, detailID uuid.UUID) error {
	return s.uow.Do(ctx, func(ctx context.Context) error {
		order, err := s.getPendingOrder(ctx, orderID)
		if err != nil {
			return err
		}

		detail, err := s.getPendingDetail(ctx, order, detailID)
		if err != nil {
			return err
		}

		if err := s.detailRepo.Delete(ctx, detail.ID); err != nil {
			return err
		}

		return s.recomputeRefund(ctx, order)
	})
}

// Reject closes a PENDING order as REJECTED, rejecting every detail with
// it. Rejection is all-or-nothing and terminal; rejecting an order twice
// fails.
func (s *ReturnService) Reject(ctx context.Context, orderID uuid.UUID, note *string) (*entity.ReturnOrder, error) {
	var rejected *entity.ReturnOrder
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		order, err := s.getPendingOrder(ctx, orderID)
		if err != nil {
			return err
		}

		details, err := s.detailRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		for i := range details {
			details[i].Status = enum.ReturnStatusRejected
			if err := s.detailRepo.Save(ctx, &details[i]); err != nil {
				return err
			}
		}

		now := time.Now()
		order.Status = enum.ReturnStatusRejected
		order.ResolvedAt = &now
		if note != nil {
			order.Note = note
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}

		rejected, err = s.orderRepo.GetWithDetails(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// Approve closes a PENDING order as APPROVED. Exchange lines reserve the
// replacement product's stock; if any reservation fails the whole unit of
// work rolls back and the order stays PENDING. Returned units are not
// restocked here; receiving them back into stock is a separate flow.
func (s *ReturnService) Approve(ctx context.Context, orderID uuid.UUID) (*entity.ReturnOrder, error) {
	var approved *entity.ReturnOrder
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		order, err := s.getPendingOrder(ctx, orderID)
		if err != nil {
			return err
		}

		details, err := s.detailRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		for i := range details {
			detail := &details[i]
			if detail.Status.IsTerminal() {
				return apperror.NewBadRequestError("Return line has already been resolved")
			}
			if detail.Type == enum.ReturnTypeExchange {
				if detail.NewProductID == nil {
					return apperror.NewBadRequestError("Exchange lines require a replacement product")
				}
				replacement, err := s.productRepo.GetByID(ctx, *detail.NewProductID)
				if err != nil {
					return err
				}
				if replacement == nil {
					return apperror.NewNotFoundError("Replacement product")
				}
				if err := s.ledger.ReserveForSale(ctx, replacement, detail.Quantity); err != nil {
					return err
				}
			}
			detail.Status = enum.ReturnStatusApproved
			if err := s.detailRepo.Save(ctx, detail); err != nil {
				return err
			}
		}

		if err := s.recomputeRefund(ctx, order); err != nil {
			return err
		}

		now := time.Now()
		order.Status = enum.ReturnStatusApproved
		order.ResolvedAt = &now
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}

		approved, err = s.orderRepo.GetWithDetails(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// Get retrieves a return order with its details
func (s *ReturnService) Get(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Return order")
	}
	return order, nil
}

// List lists return orders
func (s *ReturnService) List(ctx context.Context, params *repository.ReturnOrderFilterParams) (*pagination.PaginatedResult[entity.ReturnOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// recomputeRefund rebuilds the order's refund total from scratch as the
// sum of every line's refund amount.
func (s *ReturnService) recomputeRefund(ctx context.Context, order *entity.ReturnOrder) error {
	details, err := s.detailRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	amounts := make([]money.Amount, 0, len(details))
	for i := range details {
		amounts = append(amounts, details[i].RefundAmount)
	}
	order.TotalRefundAmount = money.Sum(amounts...)

	return s.orderRepo.Save(ctx, order)
}

func (s *ReturnService) getPendingOrder(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Return order")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewBadRequestError("Return order has already been resolved")
	}
	return order, nil
}

func (s *ReturnService) getPendingDetail(ctx context.Context, order *entity.ReturnOrder, detailID uuid.UUID) (*entity.ReturnOrderDetail, error) {
	detail, err := s.detailRepo.GetByID(ctx, detailID)
	if err != nil {
		return nil, err
	}
	if detail == nil || detail.ReturnOrderID != order.ID {
		return nil, apperror.NewNotFoundError("Return line")
	}
	if detail.Status.IsTerminal() {
		return nil, apperror.NewBadRequestError("Return line has already been resolved")
	}
	return detail, nil
}
