package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/ngocanhdo/bookstore-api/internal/domain/repository"
)

type txCtxKey struct{}

// dbFrom returns the transaction handle stashed in the context by the unit
// of work manager, falling back to the base connection. Repositories must
// use this so that reads and writes inside a unit of work share one
// database transaction.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

type unitOfWorkManager struct {
	db *gorm.DB
}

// NewUnitOfWorkManager creates a unit of work manager over the tenant's
// database connection.
func NewUnitOfWorkManager(db *gorm.DB) domainRepo.UnitOfWorkManager {
	return &unitOfWorkManager{db: db}
}

// Do runs fn inside a single database transaction. A nested call joins the
// enclosing transaction instead of opening a second one.
func (m *unitOfWorkManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}
