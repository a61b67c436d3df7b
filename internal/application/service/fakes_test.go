package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	infraRepo "github.com/ngocanhdo/bookstore-api/internal/infrastructure/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

// In-memory repository fakes. They honor the same contracts as the GORM
// implementations: lookups return (nil, nil) when nothing matches, and
// Save overwrites by ID.

type fakeUOW struct{}

func (fakeUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type fakeInventoryRepo struct {
	byProduct map[uuid.UUID]*entity.Inventory
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{byProduct: make(map[uuid.UUID]*entity.Inventory)}
}

func (r *fakeInventoryRepo) Create(ctx context.Context, inventory *entity.Inventory) error {
	if inventory.ID == uuid.Nil {
		inventory.ID = uuid.New()
	}
	r.byProduct[inventory.ProductID] = inventory
	return nil
}

func (r *fakeInventoryRepo) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Inventory, error) {
	return r.byProduct[productID], nil
}

func (r *fakeInventoryRepo) Save(ctx context.Context, inventory *entity.Inventory) error {
	r.byProduct[inventory.ProductID] = inventory
	return nil
}

type fakeInventoryLogRepo struct {
	logs []entity.InventoryLog
}

func (r *fakeInventoryLogRepo) Create(ctx context.Context, log *entity.InventoryLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeInventoryLogRepo) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryLog, int64, error) {
	var out []entity.InventoryLog
	for _, l := range r.logs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

type fakeShelfRepo struct {
	shelves map[uuid.UUID]*entity.DisplayShelf
}

func newFakeShelfRepo() *fakeShelfRepo {
	return &fakeShelfRepo{shelves: make(map[uuid.UUID]*entity.DisplayShelf)}
}

func (r *fakeShelfRepo) Create(ctx context.Context, shelf *entity.DisplayShelf) error {
	if shelf.ID == uuid.Nil {
		shelf.ID = uuid.New()
	}
	r.shelves[shelf.ID] = shelf
	return nil
}

func (r *fakeShelfRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error) {
	return r.shelves[id], nil
}

func (r *fakeShelfRepo) GetWithProducts(ctx context.Context, id uuid.UUID) (*entity.DisplayShelf, error) {
	return r.shelves[id], nil
}

func (r *fakeShelfRepo) Update(ctx context.Context, shelf *entity.DisplayShelf) error {
	r.shelves[shelf.ID] = shelf
	return nil
}

func (r *fakeShelfRepo) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.DisplayShelf, int64, error) {
	var out []entity.DisplayShelf
	for _, s := range r.shelves {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakePlacementRepo struct {
	placements map[uuid.UUID]*entity.DisplayProduct
}

func newFakePlacementRepo() *fakePlacementRepo {
	return &fakePlacementRepo{placements: make(map[uuid.UUID]*entity.DisplayProduct)}
}

func (r *fakePlacementRepo) Create(ctx context.Context, placement *entity.DisplayProduct) error {
	if placement.ID == uuid.Nil {
		placement.ID = uuid.New()
	}
	r.placements[placement.ID] = placement
	return nil
}

func (r *fakePlacementRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DisplayProduct, error) {
	return r.placements[id], nil
}

func (r *fakePlacementRepo) GetByShelfAndProduct(ctx context.Context, shelfID, productID uuid.UUID) (*entity.DisplayProduct, error) {
	for _, p := range r.placements {
		if p.ShelfID == shelfID && p.ProductID == productID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePlacementRepo) ListByShelf(ctx context.Context, shelfID uuid.UUID) ([]entity.DisplayProduct, error) {
	var out []entity.DisplayProduct
	for _, p := range r.placements {
		if p.ShelfID == shelfID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlacementRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.DisplayProduct, error) {
	var out []entity.DisplayProduct
	for _, p := range r.placements {
		if p.ProductID == productID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlacementRepo) Save(ctx context.Context, placement *entity.DisplayProduct) error {
	r.placements[placement.ID] = placement
	return nil
}

func (r *fakePlacementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.placements, id)
	return nil
}

type fakeDisplayLogRepo struct {
	logs []entity.DisplayLog
}

func (r *fakeDisplayLogRepo) Create(ctx context.Context, log *entity.DisplayLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeDisplayLogRepo) ListByShelf(ctx context.Context, shelfID uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error) {
	var out []entity.DisplayLog
	for _, l := range r.logs {
		if l.ShelfID == shelfID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDisplayLogRepo) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.DisplayLog, int64, error) {
	var out []entity.DisplayLog
	for _, l := range r.logs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

type fakeTransactionDetailRepo struct {
	details map[uuid.UUID]*entity.TransactionDetail
}

func newFakeTransactionDetailRepo() *fakeTransactionDetailRepo {
	return &fakeTransactionDetailRepo{details: make(map[uuid.UUID]*entity.TransactionDetail)}
}

func (r *fakeTransactionDetailRepo) Create(ctx context.Context, detail *entity.TransactionDetail) error {
	if detail.ID == uuid.Nil {
		detail.ID = uuid.New()
	}
	r.details[detail.ID] = detail
	return nil
}

func (r *fakeTransactionDetailRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TransactionDetail, error) {
	return r.details[id], nil
}

func (r *fakeTransactionDetailRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionDetail, error) {
	var out []entity.TransactionDetail
	for _, d := range r.details {
		if d.TransactionID == transactionID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeTransactionDetailRepo) Save(ctx context.Context, detail *entity.TransactionDetail) error {
	r.details[detail.ID] = detail
	return nil
}

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
	detailRepo   *fakeTransactionDetailRepo
}

func newFakeTransactionRepo(detailRepo *fakeTransactionDetailRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*entity.Transaction),
		detailRepo:   detailRepo,
	}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return r.transactions[id], nil
}

func (r *fakeTransactionRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	loaded := *transaction
	loaded.Details, _ = r.detailRepo.ListByTransaction(ctx, id)
	return &loaded, nil
}

func (r *fakeTransactionRepo) Save(ctx context.Context, transaction *entity.Transaction) error {
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var out []entity.Transaction
	for _, t := range r.transactions {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

type fakeReturnDetailRepo struct {
	details map[uuid.UUID]*entity.ReturnOrderDetail
}

func newFakeReturnDetailRepo() *fakeReturnDetailRepo {
	return &fakeReturnDetailRepo{details: make(map[uuid.UUID]*entity.ReturnOrderDetail)}
}

func (r *fakeReturnDetailRepo) Create(ctx context.Context, detail *entity.ReturnOrderDetail) error {
	if detail.ID == uuid.Nil {
		detail.ID = uuid.New()
	}
	r.details[detail.ID] = detail
	return nil
}

func (r *fakeReturnDetailRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReturnOrderDetail, error) {
	return r.details[id], nil
}

func (r *fakeReturnDetailRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.ReturnOrderDetail, error) {
	var out []entity.ReturnOrderDetail
	for _, d := range r.details {
		if d.ReturnOrderID == orderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeReturnDetailRepo) Save(ctx context.Context, detail *entity.ReturnOrderDetail) error {
	r.details[detail.ID] = detail
	return nil
}

func (r *fakeReturnDetailRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.details, id)
	return nil
}

type fakeReturnOrderRepo struct {
	orders     map[uuid.UUID]*entity.ReturnOrder
	detailRepo *fakeReturnDetailRepo
}

func newFakeReturnOrderRepo(detailRepo *fakeReturnDetailRepo) *fakeReturnOrderRepo {
	return &fakeReturnOrderRepo{
		orders:     make(map[uuid.UUID]*entity.ReturnOrder),
		detailRepo: detailRepo,
	}
}

func (r *fakeReturnOrderRepo) Create(ctx context.Context, order *entity.ReturnOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeReturnOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error) {
	return r.orders[id], nil
}

func (r *fakeReturnOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.ReturnOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	loaded := *order
	loaded.Details, _ = r.detailRepo.ListByOrder(ctx, id)
	return &loaded, nil
}

func (r *fakeReturnOrderRepo) Save(ctx context.Context, order *entity.ReturnOrder) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeReturnOrderRepo) List(ctx context.Context, params *repository.ReturnOrderFilterParams) ([]entity.ReturnOrder, int64, error) {
	var out []entity.ReturnOrder
	for _, o := range r.orders {
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// testEnv wires the fakes into the services under test, all scoped to one
// store.
type testEnv struct {
	ctx      context.Context
	tenantID uuid.UUID

	products      *fakeProductRepo
	inventories   *fakeInventoryRepo
	inventoryLogs *fakeInventoryLogRepo
	shelves       *fakeShelfRepo
	placements    *fakePlacementRepo
	displayLogs   *fakeDisplayLogRepo
	transactions  *fakeTransactionRepo
	txDetails     *fakeTransactionDetailRepo
	returnOrders  *fakeReturnOrderRepo
	returnDetails *fakeReturnDetailRepo
	customers     *fakeCustomerRepo

	ledger       *InventoryLedger
	displays     *DisplayService
	sales        *TransactionService
	returns      *ReturnService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tenantID:      uuid.New(),
		products:      newFakeProductRepo(),
		inventories:   newFakeInventoryRepo(),
		inventoryLogs: &fakeInventoryLogRepo{},
		shelves:       newFakeShelfRepo(),
		placements:    newFakePlacementRepo(),
		displayLogs:   &fakeDisplayLogRepo{},
		txDetails:     newFakeTransactionDetailRepo(),
		returnDetails: newFakeReturnDetailRepo(),
		customers:     newFakeCustomerRepo(),
	}
	env.ctx = infraRepo.WithTenant(context.Background(), env.tenantID)
	env.transactions = newFakeTransactionRepo(env.txDetails)
	env.returnOrders = newFakeReturnOrderRepo(env.returnDetails)

	env.ledger = NewInventoryLedger(env.inventories, env.inventoryLogs)
	env.displays = NewDisplayService(fakeUOW{}, env.shelves, env.placements, env.displayLogs, env.products, env.ledger)
	env.sales = NewTransactionService(fakeUOW{}, env.transactions, env.txDetails, env.products, env.ledger, 10.0)
	env.returns = NewReturnService(fakeUOW{}, env.returnOrders, env.returnDetails, env.transactions, env.customers, env.products, env.ledger)
	return env
}

// addProduct seeds a product whose full stock is available for sale.
func (env *testEnv) addProduct(name string, price float64, stock int) *entity.Product {
	product := &entity.Product{
		ID:           uuid.New(),
		TenantID:     env.tenantID,
		Name:         name,
		Slug:         name,
		Code:         name,
		SellingPrice: money.FromFloat(price),
		IsActive:     true,
	}
	env.products.products[product.ID] = product
	env.inventories.byProduct[product.ID] = &entity.Inventory{
		ID:                uuid.New(),
		TenantID:          env.tenantID,
		ProductID:         product.ID,
		StockQuantity:     stock,
		AvailableQuantity: stock,
	}
	return product
}

func (env *testEnv) inventoryOf(product *entity.Product) *entity.Inventory {
	return env.inventories.byProduct[product.ID]
}

func (env *testEnv) addShelf(name string) *entity.DisplayShelf {
	shelf := &entity.DisplayShelf{
		ID:       uuid.New(),
		TenantID: env.tenantID,
		Name:     name,
		IsActive: true,
	}
	env.shelves.shelves[shelf.ID] = shelf
	return shelf
}

func (env *testEnv) addCustomer(name string) *entity.Customer {
	customer := &entity.Customer{
		ID:       uuid.New(),
		TenantID: env.tenantID,
		Name:     name,
	}
	env.customers.customers[customer.ID] = customer
	return customer
}
