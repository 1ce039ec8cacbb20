package terminal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/authz"
)

// OutletDirectory resolves outlet ownership so terminal placement can be
// checked against the caller's scope.
type OutletDirectory interface {
	OperatorOf(ctx context.Context, outletID uuid.UUID) (uuid.NullUUID, bool, error)
}

type Service struct {
	repo    Repository
	outlets OutletDirectory
}

func NewService(repo Repository, outlets OutletDirectory) *Service {
	return &Service{repo: repo, outlets: outlets}
}

func (s *Service) List(ctx context.Context, identity *authz.Identity) ([]*TerminalView, error) {
	policy := authz.PolicyFor(identity)
	return s.repo.List(ctx, policy.QueryFilter(authz.EntityTerminal))
}

func (s *Service) Create(ctx context.Context, identity *authz.Identity, req *CreateTerminalRequest) (*Terminal, error) {
	if err := s.checkOutletScope(ctx, identity, req.OutletID); err != nil {
		return nil, err
	}

	key, err := generatePairingKey()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Terminal{
		ID:         uuid.New(),
		OutletID:   req.OutletID,
		Code:       req.Code,
		Status:     StatusIdle,
		PairingKey: key,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	log.Info().
		Str("terminal_id", t.ID.String()).
		Str("outlet_id", t.OutletID.String()).
		Str("code", t.Code).
		Msg("terminal created")

	return t, nil
}

func (s *Service) Delete(ctx context.Context, identity *authz.Identity, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTerminalNotFound
	}
	if err := s.checkOutletScope(ctx, identity, t.OutletID); err != nil {
		return err
	}
	if t.Status == StatusOccupied {
		return ErrTerminalOccupied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("terminal_id", id.String()).Msg("terminal deleted")
	return nil
}

// SetOffline takes a terminal out of service without deleting it. An
// occupied terminal must be settled first.
func (s *Service) SetOffline(ctx context.Context, identity *authz.Identity, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTerminalNotFound
	}
	if err := s.checkOutletScope(ctx, identity, t.OutletID); err != nil {
		return err
	}
	if t.Status == StatusOccupied {
		return ErrTerminalOccupied
	}
	return s.repo.SetStatus(ctx, id, StatusOffline)
}

// SetOnline returns an offline terminal to the floor.
func (s *Service) SetOnline(ctx context.Context, identity *authz.Identity, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTerminalNotFound
	}
	if err := s.checkOutletScope(ctx, identity, t.OutletID); err != nil {
		return err
	}
	if t.Status != StatusOffline {
		return nil
	}
	return s.repo.SetStatus(ctx, id, StatusIdle)
}

func (s *Service) checkOutletScope(ctx context.Context, identity *authz.Identity, outletID uuid.UUID) error {
	operatorID, found, err := s.outlets.OperatorOf(ctx, outletID)
	if err != nil {
		return err
	}
	if !found {
		return ErrOutletNotFound
	}

	policy := authz.PolicyFor(identity)
	rowOutlet := uuid.NullUUID{UUID: outletID, Valid: true}
	return policy.CheckRow(authz.EntityTerminal, operatorID, rowOutlet)
}

func generatePairingKey() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate pairing key: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
