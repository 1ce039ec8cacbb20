package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omspos/oms-api/internal/authz"
)

// Repository defines user data access
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, filter authz.Filter) ([]*User, error)
	LoadIdentity(ctx context.Context, userID uuid.UUID) (*authz.Identity, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	u.id, u.username, u.password_hash, u.role_id,
	COALESCE(r.name, '') AS role_name,
	u.operator_id, u.outlet_id, u.created_at, u.updated_at
`

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role_id, operator_id, outlet_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.RoleID, u.OperatorID, u.OutletID, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("user repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id WHERE u.id = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id WHERE u.username = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users SET
			username = $2, password_hash = $3, role_id = $4,
			operator_id = $5, outlet_id = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.RoleID, u.OperatorID, u.OutletID,
	)
	if err != nil {
		return fmt.Errorf("user repository update: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, filter authz.Filter) ([]*User, error) {
	if filter.None {
		return []*User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id`
	var args []interface{}
	switch {
	case filter.All:
		// unrestricted
	case filter.OperatorID.Valid:
		query += ` WHERE u.operator_id = $1`
		args = append(args, filter.OperatorID.UUID)
	case filter.OutletID.Valid:
		query += ` WHERE u.outlet_id = $1`
		args = append(args, filter.OutletID.UUID)
	default:
		return []*User{}, nil
	}
	query += ` ORDER BY u.username`

	var users []*User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

// LoadIdentity resolves the full principal for the auth middleware: role
// name, permission codes, operator and outlet affiliation in two reads.
func (r *repository) LoadIdentity(ctx context.Context, userID uuid.UUID) (*authz.Identity, error) {
	var row struct {
		ID         uuid.UUID     `db:"id"`
		Username   string        `db:"username"`
		RoleName   string        `db:"role_name"`
		OperatorID uuid.NullUUID `db:"operator_id"`
		OutletID   uuid.NullUUID `db:"outlet_id"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT u.id, u.username, COALESCE(r.name, '') AS role_name, u.operator_id, u.outlet_id
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var codes []string
	err = r.db.SelectContext(ctx, &codes, `
		SELECT p.code
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN users u ON u.role_id = rp.role_id
		WHERE u.id = $1
	`, userID)
	if err != nil {
		return nil, err
	}

	return &authz.Identity{
		UserID:      row.ID,
		Username:    row.Username,
		Role:        authz.Role(row.RoleName),
		Permissions: authz.NewPermissionSet(codes),
		OperatorID:  row.OperatorID,
		OutletID:    row.OutletID,
	}, nil
}
