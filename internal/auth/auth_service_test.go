package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/vscooter54-cell/VScooter-sub000/internal/auth"
	autherrors "github.com/vscooter54-cell/VScooter-sub000/internal/auth/errors"
	authMock "github.com/vscooter54-cell/VScooter-sub000/internal/mock/auth"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/token"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const secret = "unit-test-secret"

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(auth.Deps{Repo: mockRepo, Secret: secret})
	ctx := context.Background()

	pw, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("success_login", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, "rider@example.com").
			Return(dbgen.User{ID: userID, Email: "rider@example.com", Password: string(pw), Role: "CUSTOMER"}, nil)

		res, err := svc.Login(ctx, auth.LoginRequest{Email: " Rider@Example.com ", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "rider@example.com", res.User.Email)
		assert.True(t, res.ExpiresAt.After(time.Now()))

		claims, err := token.Parse(secret, res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "CUSTOMER", claims.Role)
	})

	t.Run("wrong_password", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, "rider@example.com").
			Return(dbgen.User{Email: "rider@example.com", Password: string(pw)}, nil)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "rider@example.com", Password: "wrongpass"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown_email", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByEmail(ctx, "ghost@example.com").
			Return(dbgen.User{}, sql.ErrNoRows)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(auth.Deps{Repo: mockRepo, Secret: secret})
	ctx := context.Background()

	t.Run("success_register", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p dbgen.CreateUserParams) (dbgen.User, error) {
				assert.Equal(t, "new@example.com", p.Email)
				assert.Equal(t, auth.RoleCustomer, p.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.Password), []byte("password123")))
				return dbgen.User{ID: uuid.New(), Email: p.Email, Name: p.Name, Role: p.Role}, nil
			})

		res, err := svc.Register(ctx, auth.RegisterRequest{Email: "New@example.com", Name: "Nia", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", res.Email)
		assert.Equal(t, "CUSTOMER", res.Role)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(dbgen.User{}, &pq.Error{Code: "23505"})

		_, err := svc.Register(ctx, auth.RegisterRequest{Email: "dup@example.com", Name: "D", Password: "password123"})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("repository_error", func(t *testing.T) {
		dbErr := errors.New("db down")
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(dbgen.User{}, dbErr)

		_, err := svc.Register(ctx, auth.RegisterRequest{Email: "x@example.com", Name: "X", Password: "password123"})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	store := authMock.NewMockTokenStore(ctrl)
	svc := auth.NewService(auth.Deps{Repo: mockRepo, Tokens: store, Secret: secret})
	ctx := context.Background()

	t.Run("revokes_until_expiry", func(t *testing.T) {
		store.EXPECT().
			Revoke(ctx, "jti-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
				assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
				return nil
			})

		require.NoError(t, svc.Logout(ctx, "jti-1", time.Now().Add(time.Hour)))
	})

	t.Run("empty_token_id_is_noop", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, "", time.Now().Add(time.Hour)))
	})
}

func TestService_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(auth.Deps{Repo: mockRepo, Secret: secret})
	ctx := context.Background()

	t.Run("invalid_id", func(t *testing.T) {
		_, err := svc.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("not_found", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(dbgen.GetUserByIDRow{}, sql.ErrNoRows)

		_, err := svc.GetMe(ctx, id.String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(dbgen.GetUserByIDRow{ID: id, Email: "a@b.c", Name: "A", Role: "ADMIN"}, nil)

		res, err := svc.GetMe(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", res.Role)
	})
}
