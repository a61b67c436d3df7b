package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
	"github.com/ngocanhdo/bookstore-api/pkg/pagination"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var out []entity.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// fakeProductCache records what the service stores and evicts.
type fakeProductCache struct {
	entries     map[uuid.UUID]*entity.Product
	invalidated []uuid.UUID
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: make(map[uuid.UUID]*entity.Product)}
}

func (c *fakeProductCache) Get(ctx context.Context, tenantID, productID uuid.UUID) (*entity.Product, error) {
	return c.entries[productID], nil
}

func (c *fakeProductCache) Set(ctx context.Context, tenantID uuid.UUID, product *entity.Product) error {
	c.entries[product.ID] = product
	return nil
}

func (c *fakeProductCache) Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error {
	delete(c.entries, productID)
	c.invalidated = append(c.invalidated, productID)
	return nil
}

type productTestEnv struct {
	*testEnv
	categories *fakeCategoryRepo
	cache      *fakeProductCache
	catalog    *ProductService
}

func newProductTestEnv() *productTestEnv {
	env := &productTestEnv{
		testEnv:    newTestEnv(),
		categories: newFakeCategoryRepo(),
		cache:      newFakeProductCache(),
	}
	env.catalog = NewProductService(fakeUOW{}, env.products, env.categories, env.inventories, env.cache)
	return env
}

func TestCreateProductSeedsInventory(t *testing.T) {
	env := newProductTestEnv()

	product, err := env.catalog.Create(env.ctx, &CreateProductInput{
		Name:          "Dune",
		SellingPrice:  19.99,
		CostPrice:     12.00,
		StockQuantity: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, money.FromFloat(19.99), product.SellingPrice)
	assert.True(t, product.IsActive)
	assert.NotEmpty(t, product.Slug)
	assert.NotEmpty(t, product.Code)

	inv := env.inventories.byProduct[product.ID]
	require.NotNil(t, inv)
	assert.Equal(t, 40, inv.StockQuantity)
	assert.Equal(t, 40, inv.AvailableQuantity)
	assert.Equal(t, 0, inv.DisplayQuantity)
	assert.Equal(t, money.FromFloat(12.00), inv.CostPrice)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	env := newProductTestEnv()
	missing := uuid.New()

	_, err := env.catalog.Create(env.ctx, &CreateProductInput{
		Name:         "Dune",
		CategoryID:   &missing,
		SellingPrice: 19.99,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetProductCachesWithoutInventory(t *testing.T) {
	env := newProductTestEnv()
	book := env.addProduct("Dune", 19.99, 40)
	book.Inventory = env.inventoryOf(book)

	got, err := env.catalog.Get(env.ctx, book.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Inventory)

	cached := env.cache.entries[book.ID]
	require.NotNil(t, cached)
	assert.Nil(t, cached.Inventory)
	assert.Equal(t, book.SellingPrice, cached.SellingPrice)
}

func TestGetProductServedFromCache(t *testing.T) {
	env := newProductTestEnv()
	book := env.addProduct("Dune", 19.99, 40)
	env.cache.entries[book.ID] = book

	// Remove the product from the repo; a cache hit must not touch it
	delete(env.products.products, book.ID)

	got, err := env.catalog.Get(env.ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	env := newProductTestEnv()
	book := env.addProduct("Dune", 19.99, 40)
	env.cache.entries[book.ID] = book

	newPrice := 24.99
	updated, err := env.catalog.Update(env.ctx, book.ID, &UpdateProductInput{SellingPrice: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, money.FromFloat(24.99), updated.SellingPrice)
	assert.Contains(t, env.cache.invalidated, book.ID)
	assert.NotContains(t, env.cache.entries, book.ID)
}

func TestDeleteProductBlockedWhileOnDisplay(t *testing.T) {
	env := newProductTestEnv()
	book := env.addProduct("Dune", 19.99, 40)
	require.NoError(t, env.ledger.MoveToDisplay(env.ctx, book, 5))

	err := env.catalog.Delete(env.ctx, book.ID)
	require.Error(t, err)
	assert.Equal(t, "Dune is still on display", err.Error())
	assert.NotNil(t, env.products.products[book.ID])
}

func TestDeleteProduct(t *testing.T) {
	env := newProductTestEnv()
	book := env.addProduct("Dune", 19.99, 40)
	env.cache.entries[book.ID] = book

	require.NoError(t, env.catalog.Delete(env.ctx, book.ID))
	assert.Nil(t, env.products.products[book.ID])
	assert.Contains(t, env.cache.invalidated, book.ID)
}

func TestReceiveStockUpdatesCostPrice(t *testing.T) {
	env := newProductTestEnv()
	book := env.addProduct("Dune", 19.99, 10)

	cost := 11.50
	inv, err := env.catalog.ReceiveStock(env.ctx, &ReceiveStockInput{
		ProductID: book.ID,
		Quantity:  15,
		CostPrice: &cost,
	}, env.ledger)
	require.NoError(t, err)

	assert.Equal(t, 25, inv.StockQuantity)
	assert.Equal(t, 25, inv.AvailableQuantity)
	assert.Equal(t, money.FromFloat(11.50), inv.CostPrice)
}

func TestCreateCategory(t *testing.T) {
	env := newProductTestEnv()

	category, err := env.catalog.CreateCategory(env.ctx, &CreateCategoryInput{
		Name:           "Science Fiction",
		TaxRatePercent: 5.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)
	assert.Equal(t, 5.0, category.TaxRatePercent)

	_, err = env.catalog.CreateCategory(env.ctx, &CreateCategoryInput{
		Name:           "Bad",
		TaxRatePercent: -1,
	})
	require.Error(t, err)
}
