package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
)

// TenantRepository defines the interface for tenant (store) data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, membership *entity.TenantMembership) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error)
}
