package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/apperror"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func newAuthService() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(users, jwtManager), users
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	user, err := auth.Register(ctx, &RegisterInput{
		FirstName: "Ngoc",
		LastName:  "Anh",
		Email:     "ngoc@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "cashier", user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	loggedIn, tokens, err := auth.Login(ctx, "ngoc@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	_, err := auth.Register(ctx, &RegisterInput{Email: "ngoc@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = auth.Register(ctx, &RegisterInput{Email: "ngoc@example.com", Password: "other"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	_, err := auth.Register(ctx, &RegisterInput{Email: "ngoc@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "ngoc@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	_, _, err = auth.Login(ctx, "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestLoginInactiveUser(t *testing.T) {
	auth, users := newAuthService()
	ctx := context.Background()

	user, err := auth.Register(ctx, &RegisterInput{Email: "ngoc@example.com", Password: "secret123"})
	require.NoError(t, err)
	users.users[user.ID].IsActive = false

	_, _, err = auth.Login(ctx, "ngoc@example.com", "secret123")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	_, err := auth.Register(ctx, &RegisterInput{Email: "ngoc@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, tokens, err := auth.Login(ctx, "ngoc@example.com", "secret123")
	require.NoError(t, err)

	refreshed, err := auth.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = auth.Refresh(ctx, "not-a-token")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}
