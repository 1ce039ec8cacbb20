package dashboard

import (
	"context"

	"github.com/omspos/oms-api/internal/authz"
)

// Placeholder revenue aggregates. The live figures (float, terminal
// counts) come from the database; these stand in for turnover reporting
// until a real aggregation job exists.
const (
	mockOutletTurnover = 12000
	mockOutletGGR      = 1200
	mockOutletNetCash  = 5000

	mockNetworkFloat     = 999999
	mockNetworkTerminals = 10
	mockNetworkTurnover  = 50000
	mockNetworkGGR       = 5000
	mockNetworkNetCash   = 10000
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary builds the dashboard block for the caller's position in the
// hierarchy: outlet staff see their floor, operators see their venues
// rolled up, admins see the network block.
func (s *Service) Summary(ctx context.Context, identity *authz.Identity) (*Summary, error) {
	switch {
	case identity.OutletID.Valid:
		balance, err := s.repo.OutletFloat(ctx, identity.OutletID.UUID)
		if err != nil {
			return nil, err
		}
		terminals, err := s.repo.ActiveTerminals(ctx, identity.OutletID.UUID)
		if err != nil {
			return nil, err
		}
		return &Summary{
			Scope:           "outlet",
			BCFBalance:      balance,
			ActiveTerminals: terminals,
			Turnover:        mockOutletTurnover,
			GGR:             mockOutletGGR,
			NetCash:         mockOutletNetCash,
		}, nil

	case identity.OperatorID.Valid:
		balance, err := s.repo.OperatorFloat(ctx, identity.OperatorID.UUID)
		if err != nil {
			return nil, err
		}
		terminals, err := s.repo.OperatorActiveTerminals(ctx, identity.OperatorID.UUID)
		if err != nil {
			return nil, err
		}
		return &Summary{
			Scope:           "operator",
			BCFBalance:      balance,
			ActiveTerminals: terminals,
			Turnover:        mockOutletTurnover,
			GGR:             mockOutletGGR,
			NetCash:         mockOutletNetCash,
		}, nil

	default:
		return &Summary{
			Scope:           "network",
			BCFBalance:      mockNetworkFloat,
			ActiveTerminals: mockNetworkTerminals,
			Turnover:        mockNetworkTurnover,
			GGR:             mockNetworkGGR,
			NetCash:         mockNetworkNetCash,
		}, nil
	}
}
