package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/enum"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/money"
)

func (env *testEnv) addCompletedTransaction() *entity.Transaction {
	now := time.Now()
	transaction := &entity.Transaction{
		ID:          uuid.New(),
		TenantID:    env.tenantID,
		CashierID:   uuid.New(),
		InvoiceNo:   uuid.NewString(),
		IsCompleted: true,
		CompletedAt: &now,
	}
	env.transactions.transactions[transaction.ID] = transaction
	return transaction
}

func TestCreateReturnOrder(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 19.99},
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 5.00},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnStatusPending, order.Status)
	require.Len(t, order.Details, 2)
	assert.Equal(t, money.FromFloat(24.99), order.TotalRefundAmount)
	assert.Nil(t, order.ResolvedAt)
}

func TestCreateReturnOrderRequiresCompletedTransaction(t *testing.T) {
	env := newTestEnv()
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()
	transaction.IsCompleted = false

	_, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "Returns are only accepted against completed transactions", err.Error())
}

func TestAddExchangeDetailRequiresReplacement(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
	})
	require.NoError(t, err)

	_, err = env.returns.AddDetail(env.ctx, order.ID, &ReturnDetailInput{
		ProductID:    book.ID,
		Type:         enum.ReturnTypeExchange,
		Quantity:     1,
		RefundAmount: 0,
	})
	require.Error(t, err)
	assert.Equal(t, "Exchange lines require a replacement product", err.Error())
}

func TestApproveExchangeReservesReplacementStock(t *testing.T) {
	env := newTestEnv()
	damaged := env.addProduct("Dune (damaged)", 19.99, 10)
	replacement := env.addProduct("Dune", 19.99, 5)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: damaged.ID, NewProductID: &replacement.ID, Type: enum.ReturnTypeExchange, Quantity: 2},
		},
	})
	require.NoError(t, err)

	approved, err := env.returns.Approve(env.ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnStatusApproved, approved.Status)
	require.NotNil(t, approved.ResolvedAt)
	require.Len(t, approved.Details, 1)
	assert.Equal(t, enum.ReturnStatusApproved, approved.Details[0].Status)

	assert.Equal(t, 3, env.inventoryOf(replacement).AvailableQuantity)
	// The returned product is not restocked on approval
	assert.Equal(t, 10, env.inventoryOf(damaged).AvailableQuantity)
}

func TestApproveFailsWhenReplacementOutOfStock(t *testing.T) {
	env := newTestEnv()
	damaged := env.addProduct("Dune (damaged)", 19.99, 10)
	replacement := env.addProduct("Dune", 19.99, 1)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: damaged.ID, NewProductID: &replacement.ID, Type: enum.ReturnTypeExchange, Quantity: 2},
		},
	})
	require.NoError(t, err)

	_, err = env.returns.Approve(env.ctx, order.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	// The order stays open and its line untouched; it can be edited and
	// approved again once stock arrives
	pending := env.returnOrders.orders[order.ID]
	assert.Equal(t, enum.ReturnStatusPending, pending.Status)
	assert.Nil(t, pending.ResolvedAt)
	for _, detail := range env.returnDetails.details {
		assert.Equal(t, enum.ReturnStatusPending, detail.Status)
	}
	assert.Equal(t, 1, env.inventoryOf(replacement).AvailableQuantity)
}

func TestApprovePlainReturnTouchesNoStock(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 3, RefundAmount: 59.97},
		},
	})
	require.NoError(t, err)

	approved, err := env.returns.Approve(env.ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, enum.ReturnStatusApproved, approved.Status)
	assert.Equal(t, money.FromFloat(59.97), approved.TotalRefundAmount)
	assert.Equal(t, 10, env.inventoryOf(book).AvailableQuantity)
	assert.Empty(t, env.inventoryLogs.logs)
}

func TestRejectIsTerminal(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 19.99},
		},
	})
	require.NoError(t, err)

	rejected, err := env.returns.Reject(env.ctx, order.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusRejected, rejected.Status)
	require.Len(t, rejected.Details, 1)
	assert.Equal(t, enum.ReturnStatusRejected, rejected.Details[0].Status)
	require.NotNil(t, rejected.ResolvedAt)

	_, err = env.returns.Reject(env.ctx, order.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "Return order has already been resolved", err.Error())

	_, err = env.returns.Approve(env.ctx, order.ID)
	require.Error(t, err)
	assert.Equal(t, "Return order has already been resolved", err.Error())
}

func TestUpdateDetailRecomputesRefund(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 19.99},
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 10.00},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Details, 2)

	newRefund := 15.00
	_, err = env.returns.UpdateDetail(env.ctx, order.ID, order.Details[0].ID, &UpdateReturnDetailInput{
		RefundAmount: &newRefund,
	})
	require.NoError(t, err)

	var others money.Amount
	for _, detail := range order.Details[1:] {
		others += detail.RefundAmount
	}
	assert.Equal(t, money.FromFloat(15.00)+others, env.returnOrders.orders[order.ID].TotalRefundAmount)
}

func TestDeleteDetailRecomputesRefund(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
		Details: []ReturnDetailInput{
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 19.99},
			{ProductID: book.ID, Type: enum.ReturnTypeReturn, Quantity: 1, RefundAmount: 10.00},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Details, 2)

	require.NoError(t, env.returns.DeleteDetail(env.ctx, order.ID, order.Details[0].ID))

	assert.Equal(t, order.Details[1].RefundAmount, env.returnOrders.orders[order.ID].TotalRefundAmount)
}

func TestAddDetailRejectsNegativeRefund(t *testing.T) {
	env := newTestEnv()
	book := env.addProduct("Dune", 19.99, 10)
	customer := env.addCustomer("Lan")
	transaction := env.addCompletedTransaction()

	order, err := env.returns.CreateOrder(env.ctx, &CreateReturnOrderInput{
		TransactionID: transaction.ID,
		CustomerID:    customer.ID,
	})
	require.NoError(t, err)

	_, err = env.returns.AddDetail(env.ctx, order.ID, &ReturnDetailInput{
		ProductID:    book.ID,
		Type:         enum.ReturnTypeReturn,
		Quantity:     1,
		RefundAmount: -1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}
