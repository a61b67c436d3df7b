package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
)

type fakeTenantRepo struct {
	tenants     map[uuid.UUID]*entity.Tenant
	memberships []entity.TenantMembership
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]*entity.Tenant)}
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return r.tenants[id], nil
}

func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	for _, m := range r.memberships {
		if m.TenantID == tenantID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTenantRepo) AddMember(ctx context.Context, membership *entity.TenantMembership) error {
	r.memberships = append(r.memberships, *membership)
	return nil
}

func (r *fakeTenantRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Tenant, error) {
	var out []entity.Tenant
	for _, m := range r.memberships {
		if m.UserID == userID {
			if t, ok := r.tenants[m.TenantID]; ok {
				out = append(out, *t)
			}
		}
	}
	return out, nil
}

func newTenantTestService() (*TenantService, *fakeTenantRepo, *fakeUserRepo) {
	tenants := newFakeTenantRepo()
	users := newFakeUserRepo()
	return NewTenantService(tenants, users), tenants, users
}

func actorContext(userID uuid.UUID) context.Context {
	return WithActor(context.Background(), Actor{UserID: userID, Role: "owner"})
}

func TestCreateTenantMakesCallerOwner(t *testing.T) {
	service, tenants, _ := newTenantTestService()
	owner := uuid.New()

	tenant, err := service.Create(actorContext(owner), &CreateTenantInput{Name: "Hanoi Books"})
	require.NoError(t, err)
	assert.Equal(t, "hanoi-books", tenant.Slug)
	assert.Equal(t, owner, tenant.OwnerID)

	isMember, err := tenants.IsMember(context.Background(), tenant.ID, owner)
	require.NoError(t, err)
	assert.True(t, isMember)
	assert.Equal(t, "owner", tenants.memberships[0].Role)
}

func TestCreateTenantDuplicateName(t *testing.T) {
	service, _, _ := newTenantTestService()
	ctx := actorContext(uuid.New())

	_, err := service.Create(ctx, &CreateTenantInput{Name: "Hanoi Books"})
	require.NoError(t, err)

	_, err = service.Create(ctx, &CreateTenantInput{Name: "Hanoi Books"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCreateTenantRequiresActor(t *testing.T) {
	service, _, _ := newTenantTestService()

	_, err := service.Create(context.Background(), &CreateTenantInput{Name: "Hanoi Books"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestAddMember(t *testing.T) {
	service, _, users := newTenantTestService()
	owner := uuid.New()
	ctx := actorContext(owner)

	tenant, err := service.Create(ctx, &CreateTenantInput{Name: "Hanoi Books"})
	require.NoError(t, err)

	staff := &entity.User{ID: uuid.New(), Email: "staff@example.com", IsActive: true}
	users.users[staff.ID] = staff

	require.NoError(t, service.AddMember(ctx, tenant.ID, staff.ID, "cashier"))

	// Adding the same user twice conflicts
	err = service.AddMember(ctx, tenant.ID, staff.ID, "cashier")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Unknown roles are rejected
	other := &entity.User{ID: uuid.New(), Email: "other@example.com", IsActive: true}
	users.users[other.ID] = other
	err = service.AddMember(ctx, tenant.ID, other.ID, "janitor")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestAddMemberOnlyOwner(t *testing.T) {
	service, _, users := newTenantTestService()
	owner := uuid.New()

	tenant, err := service.Create(actorContext(owner), &CreateTenantInput{Name: "Hanoi Books"})
	require.NoError(t, err)

	staff := &entity.User{ID: uuid.New(), Email: "staff@example.com", IsActive: true}
	users.users[staff.ID] = staff

	err = service.AddMember(actorContext(uuid.New()), tenant.ID, staff.ID, "cashier")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestAuthorize(t *testing.T) {
	service, _, _ := newTenantTestService()
	owner := uuid.New()

	tenant, err := service.Create(actorContext(owner), &CreateTenantInput{Name: "Hanoi Books"})
	require.NoError(t, err)

	require.NoError(t, service.Authorize(actorContext(owner), tenant.ID))

	err = service.Authorize(actorContext(uuid.New()), tenant.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestListForUser(t *testing.T) {
	service, _, _ := newTenantTestService()
	owner := uuid.New()
	ctx := actorContext(owner)

	_, err := service.Create(ctx, &CreateTenantInput{Name: "Hanoi Books"})
	require.NoError(t, err)
	_, err = service.Create(ctx, &CreateTenantInput{Name: "Saigon Books"})
	require.NoError(t, err)

	mine, err := service.ListForUser(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := service.ListForUser(actorContext(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, none)
}
