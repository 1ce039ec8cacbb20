package pos

import (
	"context"
	"fmt"

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

// callerOutlet resolves the outlet a POS operation runs against. POS
// actions are always performed on the caller's own floor, so an identity
// without an outlet cannot operate a terminal regardless of permissions.
func callerOutlet(identity *authz.Identity) (uuid.UUID, error) {
	if !identity.OutletID.Valid {
		return uuid.Nil, ErrOutletRequired
	}
	return identity.OutletID.UUID, nil
}

// Nickname derives the public player handle from a phone number, keeping
// the raw number off receipts and floor screens.
func Nickname(phone string) string {
	if len(phone) < 4 {
		return "Player_" + phone
	}
	return "Player_" + phone[len(phone)-4:]
}

func (s *Service) Bind(ctx context.Context, identity *authz.Identity, req *BindRequest) (*Session, error) {
	outletID, err := callerOutlet(identity)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Bind(ctx, outletID, req.TerminalID, req.Phone, Nickname(req.Phone))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("terminal_id", session.TerminalID.String()).
		Str("player", session.PlayerNickname).
		Str("cashier", identity.Username).
		Msg("player bound to terminal")

	return session, nil
}

func (s *Service) Deposit(ctx context.Context, identity *authz.Identity, req *DepositRequest) (*Session, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	outletID, err := callerOutlet(identity)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Deposit(ctx, outletID, req.TerminalID, identity.UserID, req.Amount)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("terminal_id", session.TerminalID.String()).
		Int64("amount", req.Amount).
		Int64("balance", session.Balance).
		Str("cashier", identity.Username).
		Msg("deposit credited")

	return session, nil
}

func (s *Service) Settle(ctx context.Context, identity *authz.Identity, req *SettleRequest) (*SettleResult, error) {
	outletID, err := callerOutlet(identity)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.Settle(ctx, outletID, req.TerminalID, identity.UserID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("terminal_id", result.TerminalID.String()).
		Int64("returned", result.Returned).
		Str("cashier", identity.Username).
		Msg("session settled")

	return result, nil
}

func (s *Service) ListTransactions(ctx context.Context, identity *authz.Identity, limit, offset int) ([]*Transaction, int, error) {
	policy := authz.PolicyFor(identity)
	filter := policy.QueryFilter(authz.EntityTransaction)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	transactions, total, err := s.repo.ListTransactions(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}
