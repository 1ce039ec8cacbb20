package operator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/authz"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// requireAdmin enforces the structural rule that operators are managed
// only from the top of the hierarchy. Permission grants do not override
// this: a custom role holding SETTINGS_MANAGE still cannot touch operators
// unless it belongs to an Admin.
func requireAdmin(identity *authz.Identity) error {
	if identity.Role != authz.RoleAdmin {
		return ErrAdminOnly
	}
	return nil
}

func (s *Service) List(ctx context.Context, identity *authz.Identity) ([]*Operator, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, identity *authz.Identity, id uuid.UUID) (*Operator, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	op, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}
	return op, nil
}

func (s *Service) Create(ctx context.Context, identity *authz.Identity, req *CreateOperatorRequest) (*Operator, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrOperatorNameTaken
	}

	now := time.Now()
	op := &Operator{
		ID:            uuid.New(),
		Name:          req.Name,
		WalletBalance: req.WalletBalance,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, op); err != nil {
		return nil, err
	}

	log.Info().
		Str("operator_id", op.ID.String()).
		Str("name", op.Name).
		Int64("wallet_balance", op.WalletBalance).
		Msg("operator created")

	return op, nil
}

func (s *Service) Update(ctx context.Context, identity *authz.Identity, id uuid.UUID, req *UpdateOperatorRequest) (*Operator, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	op, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}

	if req.Name != op.Name {
		existing, err := s.repo.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrOperatorNameTaken
		}
	}

	op.Name = req.Name
	op.WalletBalance = req.WalletBalance
	op.ContactPerson = req.ContactPerson
	op.Email = req.Email
	op.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}

	log.Info().
		Str("operator_id", op.ID.String()).
		Str("name", op.Name).
		Msg("operator updated")

	return op, nil
}
