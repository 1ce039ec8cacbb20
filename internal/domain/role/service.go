package role

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles role management business logic
type Service struct {
	repo Repository
}

// NewService creates role service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPermissions returns the permission catalog
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// ListRoles returns all roles with their permission sets
func (s *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole returns a role by ID
func (s *Service) GetRole(ctx context.Context, id uuid.UUID) (*Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

// CreateRole creates a role with the given permission set
func (s *Service) CreateRole(ctx context.Context, name string, permissionIDs []uuid.UUID) (*Role, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameTaken
	}

	role := &Role{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, role, permissionIDs); err != nil {
		return nil, err
	}

	log.Info().Str("role", name).Int("permissions", len(permissionIDs)).Msg("role created")
	return s.GetRole(ctx, role.ID)
}

// UpdateRole renames a role and replaces its permission set
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, name string, permissionIDs []uuid.UUID) (*Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	if name != role.Name {
		existing, err := s.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrRoleNameTaken
		}
		role.Name = name
	}

	if err := s.repo.Update(ctx, role, permissionIDs); err != nil {
		return nil, err
	}

	log.Info().Str("role", role.Name).Int("permissions", len(permissionIDs)).Msg("role updated")
	return s.GetRole(ctx, id)
}

// DeleteRole removes a role. Roles still referenced by users are
// delete-guarded.
func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	count, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("role", role.Name).Msg("role deleted")
	return nil
}
