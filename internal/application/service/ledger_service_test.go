package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
)

func TestReserveForSale(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 5)

	err := env.ledger.ReserveForSale(env.ctx, book, 3)
	require.NoError(t, err)

	inv := env.inventoryOf(book)
	assert.Equal(t, 2, inv.AvailableQuantity)
	assert.Equal(t, 5, inv.StockQuantity)

	require.Len(t, env.inventoryLogs.logs, 1)
	assert.Equal(t, "RESERVE_FOR_SALE", env.inventoryLogs.logs[0].Action)
	assert.Equal(t, -3, env.inventoryLogs.logs[0].QuantityChange)
}

func TestReserveForSaleInsufficientStock(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 5)

	err := env.ledger.ReserveForSale(env.ctx, book, 6)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.Equal(t, "Insufficient stock for Dune: 5 remaining", err.Error())

	// Counters untouched and no log written for the failed attempt
	inv := env.inventoryOf(book)
	assert.Equal(t, 5, inv.AvailableQuantity)
	assert.Empty(t, env.inventoryLogs.logs)
}

func TestReserveThenReleaseRoundTrip(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)

	require.NoError(t, env.ledger.ReserveForSale(env.ctx, book, 4))
	require.NoError(t, env.ledger.ReleaseFromSale(env.ctx, book, 4))

	inv := env.inventoryOf(book)
	assert.Equal(t, 10, inv.AvailableQuantity)
	assert.Len(t, env.inventoryLogs.logs, 2)
	assert.Equal(t, "RELEASE_FROM_SALE", env.inventoryLogs.logs[1].Action)
	assert.Equal(t, 4, env.inventoryLogs.logs[1].QuantityChange)
}

func TestMoveToDisplayConservesTotal(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 100)

	require.NoError(t, env.ledger.MoveToDisplay(env.ctx, book, 30))

	inv := env.inventoryOf(book)
	assert.Equal(t, 70, inv.AvailableQuantity)
	assert.Equal(t, 30, inv.DisplayQuantity)
	assert.Equal(t, 100, inv.StockQuantity)
	assert.Equal(t, inv.StockQuantity, inv.AvailableQuantity+inv.DisplayQuantity)
}

func TestMoveToDisplayInsufficientAvailable(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)

	err := env.ledger.MoveToDisplay(env.ctx, book, 11)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
}

func TestMoveFromDisplayToStock(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 100)
	require.NoError(t, env.ledger.MoveToDisplay(env.ctx, book, 30))

	require.NoError(t, env.ledger.MoveFromDisplayToStock(env.ctx, book, 10))

	inv := env.inventoryOf(book)
	assert.Equal(t, 80, inv.AvailableQuantity)
	assert.Equal(t, 20, inv.DisplayQuantity)
}

func TestMoveFromDisplayMoreThanDisplayed(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 100)
	require.NoError(t, env.ledger.MoveToDisplay(env.ctx, book, 5))

	err := env.ledger.MoveFromDisplayToStock(env.ctx, book, 6)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestReceiveStock(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 5)

	inv, err := env.ledger.ReceiveStock(env.ctx, book, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, inv.StockQuantity)
	assert.Equal(t, 25, inv.AvailableQuantity)

	require.Len(t, env.inventoryLogs.logs, 1)
	assert.Equal(t, "RECEIVE_STOCK", env.inventoryLogs.logs[0].Action)
	assert.Equal(t, 20, env.inventoryLogs.logs[0].QuantityChange)
}

func TestLedgerRejectsNonPositiveQuantities(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 5)

	assert.Error(t, env.ledger.ReserveForSale(env.ctx, book, 0))
	assert.Error(t, env.ledger.ReleaseFromSale(env.ctx, book, -1))
	assert.Error(t, env.ledger.MoveToDisplay(env.ctx, book, 0))
	assert.Error(t, env.ledger.MoveFromDisplayToStock(env.ctx, book, -2))

	_, err := env.ledger.ReceiveStock(env.ctx, book, 0, nil)
	assert.Error(t, err)
}
