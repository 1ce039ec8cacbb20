package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/authz"
	"github.com/omspos/oms-api/internal/pkg/password"
)

// RoleDirectory resolves role names for the level guard
type RoleDirectory interface {
	GetRoleName(ctx context.Context, roleID uuid.UUID) (string, error)
}

// OutletDirectory resolves an outlet's owning operator for the scope guard
type OutletDirectory interface {
	OperatorOf(ctx context.Context, outletID uuid.UUID) (uuid.NullUUID, bool, error)
}

// Service handles user management: permission-gated CRUD behind the level
// and scope guards.
type Service struct {
	repo    Repository
	roles   RoleDirectory
	outlets OutletDirectory
}

// NewService creates user service
func NewService(repo Repository, roles RoleDirectory, outlets OutletDirectory) *Service {
	return &Service{repo: repo, roles: roles, outlets: outlets}
}

// List returns users within the caller's organizational subtree. Out-of-scope
// rows are filtered, never an error.
func (s *Service) List(ctx context.Context, identity *authz.Identity) ([]*User, error) {
	filter := authz.PolicyFor(identity).QueryFilter(authz.EntityUser)
	return s.repo.List(ctx, filter)
}

// Get returns a single user, guarded by a direct-ID scope check.
func (s *Service) Get(ctx context.Context, identity *authz.Identity, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := authz.PolicyFor(identity).CheckRow(authz.EntityUser, u.OperatorID, u.OutletID); err != nil {
		return nil, err
	}
	return u, nil
}

// Create creates a user. The level guard decides whether the creator role
// may assign the target role; the scope guard force-assigns the
// organizational affiliation.
func (s *Service) Create(ctx context.Context, identity *authz.Identity, req *CreateUserRequest) (*User, error) {
	targetRole, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	if err := authz.CheckAssignment(identity.Role, targetRole); err != nil {
		return nil, err
	}

	forced, err := s.forcedAffiliation(ctx, identity, nullFromPtr(req.OperatorID), nullFromPtr(req.OutletID))
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		RoleID:       req.RoleID,
		RoleName:     string(targetRole),
		OperatorID:   forced.OperatorID,
		OutletID:     forced.OutletID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().
		Str("username", u.Username).
		Str("role", u.RoleName).
		Str("created_by", identity.Username).
		Msg("user created")
	return u, nil
}

// Update modifies a user within the caller's scope. Role changes re-run the
// level guard; affiliation changes re-run the scope guard.
func (s *Service) Update(ctx context.Context, identity *authz.Identity, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	policy := authz.PolicyFor(identity)
	if err := policy.CheckRow(authz.EntityUser, u.OperatorID, u.OutletID); err != nil {
		return nil, err
	}

	targetRole, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}
	if req.RoleID != u.RoleID {
		if err := authz.CheckAssignment(identity.Role, targetRole); err != nil {
			return nil, err
		}
	}

	forced, err := s.forcedAffiliation(ctx, identity, nullFromPtr(req.OperatorID), nullFromPtr(req.OutletID))
	if err != nil {
		return nil, err
	}

	if req.Username != u.Username {
		existing, err := s.repo.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
		u.Username = req.Username
	}

	if req.Password != "" {
		hash, err := password.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	u.RoleID = req.RoleID
	u.RoleName = string(targetRole)
	u.OperatorID = forced.OperatorID
	u.OutletID = forced.OutletID

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	log.Info().
		Str("username", u.Username).
		Str("updated_by", identity.Username).
		Msg("user updated")
	return u, nil
}

func (s *Service) resolveRole(ctx context.Context, roleID uuid.UUID) (authz.Role, error) {
	name, err := s.roles.GetRoleName(ctx, roleID)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", ErrRoleNotFound
	}
	return authz.Role(name), nil
}

// forcedAffiliation runs the write-scope guard and, for operator callers,
// verifies the requested outlet actually belongs to their operator.
func (s *Service) forcedAffiliation(ctx context.Context, identity *authz.Identity, reqOperator, reqOutlet uuid.NullUUID) (authz.Forced, error) {
	policy := authz.PolicyFor(identity)
	forced, err := policy.ForcedFields(authz.EntityUser, authz.Forced{OperatorID: reqOperator, OutletID: reqOutlet})
	if err != nil {
		return authz.Forced{}, err
	}

	if identity.Role == authz.RoleOperator && forced.OutletID.Valid {
		ownerID, found, err := s.outlets.OperatorOf(ctx, forced.OutletID.UUID)
		if err != nil {
			return authz.Forced{}, err
		}
		if !found {
			return authz.Forced{}, &authz.ScopeGuardError{Entity: authz.EntityOutlet, Detail: "outlet not found in your scope"}
		}
		if err := policy.CheckRow(authz.EntityOutlet, ownerID, forced.OutletID); err != nil {
			return authz.Forced{}, err
		}
	}

	return forced, nil
}

func nullFromPtr(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
