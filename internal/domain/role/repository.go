package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines role and permission data access
type Repository interface {
	ListPermissions(ctx context.Context) ([]Permission, error)
	ListRoles(ctx context.Context) ([]*Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	Create(ctx context.Context, r *Role, permissionIDs []uuid.UUID) error
	Update(ctx context.Context, r *Role, permissionIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context, roleID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates role repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := r.db.SelectContext(ctx, &perms, `SELECT id, code, description FROM permissions ORDER BY code`)
	return perms, err
}

func (r *repository) ListRoles(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	if err := r.db.SelectContext(ctx, &roles, `SELECT id, name, created_at FROM roles ORDER BY name`); err != nil {
		return nil, err
	}

	for _, role := range roles {
		perms, err := r.permissionsForRole(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
	}
	return roles, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	var role Role
	err := r.db.GetContext(ctx, &role, `SELECT id, name, created_at FROM roles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	perms, err := r.permissionsForRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return &role, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := r.db.GetContext(ctx, &role, `SELECT id, name, created_at FROM roles WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *repository) Create(ctx context.Context, role *Role, permissionIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at) VALUES ($1, $2, $3)`,
		role.ID, role.Name, role.CreatedAt,
	); err != nil {
		return fmt.Errorf("role repository create: %w", err)
	}

	if err := replacePermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, role *Role, permissionIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE roles SET name = $2 WHERE id = $1`, role.ID, role.Name); err != nil {
		return fmt.Errorf("role repository update: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, role.ID); err != nil {
		return err
	}

	if err := replacePermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CountUsers(ctx context.Context, roleID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role_id = $1`, roleID)
	return count, err
}

func (r *repository) permissionsForRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error) {
	var perms []Permission
	err := r.db.SelectContext(ctx, &perms, `
		SELECT p.id, p.code, p.description
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.code
	`, roleID)
	return perms, err
}

func replacePermissions(ctx context.Context, tx *sqlx.Tx, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	for _, pid := range permissionIDs {
		// Unknown permission IDs are skipped rather than erroring; the
		// catalog is closed, so the join insert is the authority.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO role_permissions (role_id, permission_id)
			SELECT $1, id FROM permissions WHERE id = $2
			ON CONFLICT DO NOTHING
		`, roleID, pid); err != nil {
			return err
		}
	}
	return nil
}
