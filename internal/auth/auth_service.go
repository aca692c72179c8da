package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	autherrors "github.com/vscooter54-cell/VScooter-sub000/internal/auth/errors"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/token"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"

	defaultAccessTTL = 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=../mock/auth/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	repo      Repository
	tokens    TokenStore
	secret    string
	accessTTL time.Duration
	logger    *zap.Logger
}

type Deps struct {
	Repo      Repository
	Tokens    TokenStore
	Secret    string
	AccessTTL time.Duration
	Logger    *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("auth repository cannot be nil")
	}
	if deps.Secret == "" {
		panic("jwt secret cannot be empty")
	}
	if deps.AccessTTL == 0 {
		deps.AccessTTL = defaultAccessTTL
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{
		repo:      deps.Repo,
		tokens:    deps.Tokens,
		secret:    deps.Secret,
		accessTTL: deps.AccessTTL,
		logger:    deps.Logger,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user, err := s.repo.Create(ctx, dbgen.CreateUserParams{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Name:     strings.TrimSpace(req.Name),
		Password: string(hashed),
		Role:     RoleCustomer,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("create user failed", zap.Error(err))
		return AuthResponse{}, err
	}

	return AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("lookup user failed", zap.Error(err))
		}
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	signed, claims, err := token.Generate(s.secret, user.ID.String(), user.Role, s.accessTTL)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		User: AuthResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
		AccessToken: signed,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func (s *service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.tokens == nil || tokenID == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, tokenID, time.Until(expiresAt))
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}

	return AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}, nil
}
