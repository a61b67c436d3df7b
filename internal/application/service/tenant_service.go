package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/internal/domain/repository"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
)

// TenantService manages stores and their staff memberships
type TenantService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository, userRepo repository.UserRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
	}
}

// CreateTenantInput represents the create store input
type CreateTenantInput struct {
	Name    string
	Address *string
	Phone   *string
}

// Create creates a store owned by the calling user, who becomes its first
// member.
func (s *TenantService) Create(ctx context.Context, input *CreateTenantInput) (*entity.Tenant, error) {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return nil, apperror.NewUnauthorizedError("Authentication required")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A store with this name already exists")
	}

	tenant := &entity.Tenant{
		Name:    input.Name,
		Slug:    slug,
		Address: input.Address,
		Phone:   input.Phone,
		OwnerID: actor.UserID,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	membership := &entity.TenantMembership{
		TenantID: tenant.ID,
		UserID:   actor.UserID,
		Role:     "owner",
	}
	if err := s.tenantRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}

	return tenant, nil
}

// Get retrieves a store
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return tenant, nil
}

// GetBySlug retrieves a store by its slug
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return tenant, nil
}

// AddMember adds a staff member to a store. Only the owner may add
// members.
func (s *TenantService) AddMember(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return apperror.NewUnauthorizedError("Authentication required")
	}

	tenant, err := s.Get(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.OwnerID != actor.UserID {
		return apperror.NewForbiddenError("Only the store owner can add members")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	isMember, err := s.tenantRepo.IsMember(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return apperror.NewConflictError("User is already a member of this store")
	}

	switch role {
	case "owner", "manager", "cashier":
	default:
		return apperror.NewBadRequestError("Unknown role: " + role)
	}

	return s.tenantRepo.AddMember(ctx, &entity.TenantMembership{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
	})
}

// ListForUser lists the stores the calling user belongs to
func (s *TenantService) ListForUser(ctx context.Context) ([]entity.Tenant, error) {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return nil, apperror.NewUnauthorizedError("Authentication required")
	}
	return s.tenantRepo.ListForUser(ctx, actor.UserID)
}

// Authorize verifies that the calling user is a member of the store
func (s *TenantService) Authorize(ctx context.Context, tenantID uuid.UUID) error {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return apperror.NewUnauthorizedError("Authentication required")
	}

	isMember, err := s.tenantRepo.IsMember(ctx, tenantID, actor.UserID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperror.NewForbiddenError("You are not a member of this store")
	}
	return nil
}
