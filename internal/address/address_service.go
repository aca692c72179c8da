package address

import (
	"context"
	"strings"

	autherrors "github.com/vscooter54-cell/VScooter-sub000/internal/auth/errors"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=address_service.go -destination=../mock/address/address_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, userID string) ([]AddressResponse, error)
	Create(ctx context.Context, userID string, req CreateAddressRequest) (AddressResponse, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("address.service")
	}
	return &service{
		repo:     repo,
		validate: validator.New(),
		logger:   l,
	}
}

func (s *service) List(ctx context.Context, userID string) ([]AddressResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	rows, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	res := make([]AddressResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, toResponse(r))
	}
	return res, nil
}

func (s *service) Create(ctx context.Context, userID string, req CreateAddressRequest) (AddressResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return AddressResponse{}, autherrors.ErrInvalidUserID
	}

	req = trim(req)
	if err := s.validate.Struct(req); err != nil {
		return AddressResponse{}, ErrIncompleteAddress
	}

	label := req.Label
	if label == "" {
		label = "Shipping"
	}

	row, err := s.repo.Create(ctx, dbgen.CreateAddressParams{
		UserID:     uid,
		Label:      label,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsPrimary:  req.IsPrimary,
	})
	if err != nil {
		return AddressResponse{}, err
	}

	s.logger.Info("address saved", zap.String("user_id", userID), zap.String("address_id", row.ID.String()))
	return toResponse(row), nil
}

func trim(req CreateAddressRequest) CreateAddressRequest {
	req.Label = strings.TrimSpace(req.Label)
	req.Street = strings.TrimSpace(req.Street)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	req.Country = strings.TrimSpace(req.Country)
	return req
}

func toResponse(a dbgen.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID.String(),
		Label:      a.Label,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsPrimary:  a.IsPrimary,
		CreatedAt:  a.CreatedAt,
	}
}
