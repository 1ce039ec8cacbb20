package outlet

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

func (s *Service) List(ctx context.Context, identity *authz.Identity) ([]*Outlet, error) {
	policy := authz.PolicyFor(identity)
	return s.repo.List(ctx, policy.QueryFilter(authz.EntityOutlet))
}

func (s *Service) Get(ctx context.Context, identity *authz.Identity, id uuid.UUID) (*Outlet, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOutletNotFound
	}

	policy := authz.PolicyFor(identity)
	rowOperator := uuid.NullUUID{UUID: o.OperatorID, Valid: true}
	rowOutlet := uuid.NullUUID{UUID: o.ID, Valid: true}
	if err := policy.CheckRow(authz.EntityOutlet, rowOperator, rowOutlet); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Create(ctx context.Context, identity *authz.Identity, req *CreateOutletRequest) (*Outlet, error) {
	policy := authz.PolicyFor(identity)

	var requestedOperator uuid.NullUUID
	if req.OperatorID != nil {
		requestedOperator = uuid.NullUUID{UUID: *req.OperatorID, Valid: true}
	}
	forced, err := policy.ForcedFields(authz.EntityOutlet, authz.Forced{OperatorID: requestedOperator})
	if err != nil {
		return nil, err
	}
	if !forced.OperatorID.Valid {
		return nil, ErrOperatorNotAssigned
	}

	now := time.Now()
	o := &Outlet{
		ID:         uuid.New(),
		OperatorID: forced.OperatorID.UUID,
		Name:       req.Name,
		Address:    req.Address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info().
		Str("outlet_id", o.ID.String()).
		Str("operator_id", o.OperatorID.String()).
		Str("name", o.Name).
		Msg("outlet created")

	return o, nil
}

func (s *Service) Update(ctx context.Context, identity *authz.Identity, id uuid.UUID, req *UpdateOutletRequest) (*Outlet, error) {
	o, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	o.Name = req.Name
	o.Address = req.Address
	o.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// TopUpBCF funds an outlet's cash float from its operator's master wallet.
// The caller must hold BCF_MANAGE and the outlet must be inside the
// caller's scope.
func (s *Service) TopUpBCF(ctx context.Context, identity *authz.Identity, id uuid.UUID, req *TopUpBCFRequest) (*Outlet, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidTopUpAmount
	}

	if _, err := s.Get(ctx, identity, id); err != nil {
		return nil, err
	}

	o, err := s.repo.TopUpBCF(ctx, id, req.Amount)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("outlet_id", o.ID.String()).
		Int64("amount", req.Amount).
		Int64("bcf_balance", o.BCFBalance).
		Msg("outlet float topped up")

	return o, nil
}

// OperatorOf reports which operator owns an outlet. Other domains use it
// through a narrow directory interface when they need to verify outlet
// ownership.
func (s *Service) OperatorOf(ctx context.Context, outletID uuid.UUID) (uuid.NullUUID, bool, error) {
	return s.repo.OperatorOf(ctx, outletID)
}
