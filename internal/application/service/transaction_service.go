package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	infraRepo "github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
)

// TransactionService handles point-of-sale transactions. All total fields
// are recomputed from the full set of lines after every mutation.
type TransactionService struct {
	uow             repository.UnitOfWorkManager
	transactionRepo repository.TransactionRepository
	detailRepo      repository.TransactionDetailRepository
	productRepo     repository.ProductRepository
	ledger          *InventoryLedger
	taxRatePercent  float64
}

// NewTransactionService creates a new transaction service. taxRatePercent
// is the store-wide flat rate applied to every committed transaction.
func NewTransactionService(
	uow repository.UnitOfWorkManager,
	transactionRepo repository.TransactionRepository,
	detailRepo repository.TransactionDetailRepository,
	productRepo repository.ProductRepository,
	ledger *InventoryLedger,
	taxRatePercent float64,
) *TransactionService {
	return &TransactionService{
		uow:             uow,
		transactionRepo: transactionRepo,
		detailRepo:      detailRepo,
		productRepo:     productRepo,
		ledger:          ledger,
		taxRatePercent:  taxRatePercent,
	}
}

// SaleLineInput represents one requested sale line. UnitPrice overrides
// the catalog price when set.
type SaleLineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *float64
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	CashierID  uuid.UUID
	Note       *string
	PaidAmount float64
	Lines      []SaleLineInput
}

// Create creates a completed sale: it reserves stock for every line,
// merges duplicate product lines, and computes totals. Any failure (an
// inactive product, insufficient stock on the third line, a missing
// product) rolls back the whole sale.
func (s *TransactionService) Create(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Transaction requires at least one line")
	}

	var created *entity.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		now := time.Now()
		transaction := &entity.Transaction{
			TenantID:    tenantID,
			CashierID:   input.CashierID,
			InvoiceNo:   utils.GenerateInvoiceNo(),
			Note:        input.Note,
			PaidAmount:  money.FromFloat(input.PaidAmount),
			IsCompleted: true,
			CompletedAt: &now,
		}
		if err := s.transactionRepo.Create(ctx, transaction); err != nil {
			return err
		}

		if err := s.applyLines(ctx, transaction, input.Lines); err != nil {
			return err
		}

		if err := s.recomputeTotals(ctx, transaction); err != nil {
			return err
		}

		var err error
		created, err = s.transactionRepo.GetWithDetails(ctx, transaction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddDetails appends lines to an existing transaction (completed ones
// included) with the same per-line reserve-and-merge logic as Create. Only
// the cashier who owns the transaction may extend it.
func (s *TransactionService) AddDetails(ctx context.Context, transactionID uuid.UUID, lines []SaleLineInput) (*entity.Transaction, error) {
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("At least one line is required")
	}

	var updated *entity.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		transaction, err := s.getOwnedTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		if err := s.applyLines(ctx, transaction, lines); err != nil {
			return err
		}

		if err := s.recomputeTotals(ctx, transaction); err != nil {
			return err
		}

		updated, err = s.transactionRepo.GetWithDetails(ctx, transaction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateDetailInput represents the update detail input. Nil fields keep
// their current value.
type UpdateDetailInput struct {
	Quantity  *int
	UnitPrice *float64
}

// UpdateDetail changes the quantity and/or unit price of one line. Growing
// a line is rejected: stock reservation lives in the add path, so callers
// must add a line for the same product and let it merge. Shrinking a line
// releases the freed units back to the available pool.
func (s *TransactionService) UpdateDetail(ctx context.Context, transactionID, detailID uuid.UUID, input *UpdateDetailInput) (*entity.Transaction, error) {
	var updated *entity.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		transaction, err := s.getOwnedTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		detail, err := s.detailRepo.GetByID(ctx, detailID)
		if err != nil {
			return err
		}
		if detail == nil || detail.TransactionID != transaction.ID {
			return apperror.NewNotFoundError("Transaction detail")
		}

		if input.Quantity != nil {
			newQty := *input.Quantity
			if newQty <= 0 {
				return apperror.NewBadRequestError("Quantity must be positive")
			}
			if newQty > detail.Quantity {
				return apperror.NewBadRequestError("Cannot increase quantity here; add the product to the transaction instead")
			}
			if newQty < detail.Quantity {
				product, err := s.getProduct(ctx, detail.ProductID)
				if err != nil {
					return err
				}
				if err := s.ledger.ReleaseFromSale(ctx, product, detail.Quantity-newQty); err != nil {
					return err
				}
				detail.Quantity = newQty
			}
		}

		if input.UnitPrice != nil {
			detail.UnitPrice = money.FromFloat(*input.UnitPrice)
		}

		detail.TotalPrice = money.Multiply(detail.UnitPrice, detail.Quantity)
		if err := s.detailRepo.Save(ctx, detail); err != nil {
			return err
		}

		if err := s.recomputeTotals(ctx, transaction); err != nil {
			return err
		}

		updated, err = s.transactionRepo.GetWithDetails(ctx, transaction.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get retrieves a transaction with its lines
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// List lists transactions with filtering
func (s *TransactionService) List(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// QuoteLine is one priced line of a quote
type QuoteLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	TaxAmount  float64   `json:"tax_amount"`
}

// Quote is a non-binding price estimate for a prospective cart
type Quote struct {
	Lines       []QuoteLine `json:"lines"`
	TotalAmount float64     `json:"total_amount"`
	TaxAmount   float64     `json:"tax_amount"`
	FinalAmount float64     `json:"final_amount"`
}

// Estimate prices a prospective cart without touching stock. Unlike
// committed transactions, which apply the flat store rate, estimates use
// each product's category tax rate. The two paths intentionally diverge.
func (s *TransactionService) Estimate(ctx context.Context, lines []SaleLineInput) (*Quote, error) {
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("At least one line is required")
	}

	quote := &Quote{Lines: make([]QuoteLine, 0, len(lines))}
	var total, tax money.Amount

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be positive")
		}
		product, err := s.getProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice := product.SellingPrice
		if line.UnitPrice != nil {
			unitPrice = money.FromFloat(*line.UnitPrice)
		}

		lineTotal := money.Multiply(unitPrice, line.Quantity)
		var lineTax money.Amount
		if product.Category != nil {
			lineTax = money.ApplyRate(lineTotal, product.Category.TaxRatePercent)
		} else {
			lineTax = money.ApplyRate(lineTotal, s.taxRatePercent)
		}

		total += lineTotal
		tax += lineTax
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID:  product.ID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice.Float64(),
			TotalPrice: lineTotal.Float64(),
			TaxAmount:  lineTax.Float64(),
		})
	}

	quote.TotalAmount = total.Float64()
	quote.TaxAmount = tax.Float64()
	quote.FinalAmount = money.Sum(total, tax).Float64()
	return quote, nil
}

// applyLines reserves stock and creates or merges one detail per line.
func (s *TransactionService) applyLines(ctx context.Context, transaction *entity.Transaction, lines []SaleLineInput) error {
	details, err := s.detailRepo.ListByTransaction(ctx, transaction.ID)
	if err != nil {
		return err
	}
	byProduct := make(map[uuid.UUID]*entity.TransactionDetail, len(details))
	for i := range details {
		byProduct[details[i].ProductID] = &details[i]
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return apperror.NewBadRequestError("Quantity must be positive")
		}

		product, err := s.getProduct(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return apperror.NewBadRequestError(product.Name + " is not available for sale")
		}

		if err := s.ledger.ReserveForSale(ctx, product, line.Quantity); err != nil {
			return err
		}

		if existing, ok := byProduct[product.ID]; ok {
			// Merge rule: add quantities, take the new explicit unit
			// price when supplied, else keep the existing one.
			existing.Quantity += line.Quantity
			if line.UnitPrice != nil {
				existing.UnitPrice = money.FromFloat(*line.UnitPrice)
			}
			existing.TotalPrice = money.Multiply(existing.UnitPrice, existing.Quantity)
			if err := s.detailRepo.Save(ctx, existing); err != nil {
				return err
			}
			continue
		}

		unitPrice := product.SellingPrice
		if line.UnitPrice != nil {
			unitPrice = money.FromFloat(*line.UnitPrice)
		}
		detail := &entity.TransactionDetail{
			TenantID:      transaction.TenantID,
			TransactionID: transaction.ID,
			ProductID:     product.ID,
			Quantity:      line.Quantity,
			UnitPrice:     unitPrice,
			TotalPrice:    money.Multiply(unitPrice, line.Quantity),
		}
		if err := s.detailRepo.Create(ctx, detail); err != nil {
			return err
		}
		byProduct[product.ID] = detail
	}

	return nil
}

// recomputeTotals rebuilds the transaction's money fields from the full
// set of current lines.
func (s *TransactionService) recomputeTotals(ctx context.Context, transaction *entity.Transaction) error {
	details, err := s.detailRepo.ListByTransaction(ctx, transaction.ID)
	if err != nil {
		return err
	}

	lineTotals := make([]money.Amount, len(details))
	for i, detail := range details {
		lineTotals[i] = detail.TotalPrice
	}

	transaction.TotalAmount = money.Sum(lineTotals...)
	transaction.TaxAmount = money.ApplyRate(transaction.TotalAmount, s.taxRatePercent)
	transaction.FinalAmount = money.Sum(transaction.TotalAmount, transaction.TaxAmount)
	if transaction.PaidAmount > transaction.FinalAmount {
		transaction.ChangeAmount = transaction.PaidAmount - transaction.FinalAmount
	} else {
		transaction.ChangeAmount = 0
	}

	return s.transactionRepo.Save(ctx, transaction)
}

func (s *TransactionService) getOwnedTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if actor, ok := ActorFrom(ctx); ok && transaction.CashierID != actor.UserID {
		return nil, apperror.NewForbiddenError("Transaction belongs to another cashier")
	}
	return transaction, nil
}

func (s *TransactionService) getProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
