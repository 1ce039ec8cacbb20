package outlet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omspos/oms-api/internal/authz"
)

type Repository interface {
	Create(ctx context.Context, o *Outlet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Outlet, error)
	Update(ctx context.Context, o *Outlet) error
	List(ctx context.Context, filter authz.Filter) ([]*Outlet, error)
	OperatorOf(ctx context.Context, outletID uuid.UUID) (uuid.NullUUID, bool, error)
	TopUpBCF(ctx context.Context, outletID uuid.UUID, amount int64) (*Outlet, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, o *Outlet) error {
	query := `
		INSERT INTO outlets (id, operator_id, name, address, bcf_balance, created_at, updated_at)
		VALUES (:id, :operator_id, :name, :address, :bcf_balance, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, o)
	if err != nil {
		return fmt.Errorf("failed to create outlet: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Outlet, error) {
	var o Outlet
	err := r.db.GetContext(ctx, &o, `SELECT * FROM outlets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outlet: %w", err)
	}
	return &o, nil
}

func (r *postgresRepository) Update(ctx context.Context, o *Outlet) error {
	query := `
		UPDATE outlets
		SET name = :name, address = :address, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, o)
	if err != nil {
		return fmt.Errorf("failed to update outlet: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrOutletNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, filter authz.Filter) ([]*Outlet, error) {
	outlets := []*Outlet{}
	if filter.None {
		return outlets, nil
	}

	query := `SELECT * FROM outlets`
	args := []interface{}{}
	switch {
	case filter.All:
	case filter.OperatorID.Valid:
		query += ` WHERE operator_id = $1`
		args = append(args, filter.OperatorID.UUID)
	case filter.OutletID.Valid:
		query += ` WHERE id = $1`
		args = append(args, filter.OutletID.UUID)
	default:
		return outlets, nil
	}
	query += ` ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &outlets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}
	return outlets, nil
}

func (r *postgresRepository) OperatorOf(ctx context.Context, outletID uuid.UUID) (uuid.NullUUID, bool, error) {
	var operatorID uuid.UUID
	err := r.db.GetContext(ctx, &operatorID, `SELECT operator_id FROM outlets WHERE id = $1`, outletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.NullUUID{}, false, nil
		}
		return uuid.NullUUID{}, false, fmt.Errorf("failed to resolve outlet operator: %w", err)
	}
	return uuid.NullUUID{UUID: operatorID, Valid: true}, true, nil
}

// TopUpBCF moves amount from the owning operator's master wallet into the
// outlet's cash float. Both rows are locked for the duration of the
// transaction, outlet first, so concurrent top-ups serialize cleanly.
func (r *postgresRepository) TopUpBCF(ctx context.Context, outletID uuid.UUID, amount int64) (*Outlet, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var o Outlet
	err = tx.GetContext(ctx, &o, `SELECT * FROM outlets WHERE id = $1 FOR UPDATE`, outletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOutletNotFound
		}
		return nil, fmt.Errorf("failed to lock outlet: %w", err)
	}

	var walletBalance int64
	err = tx.GetContext(ctx, &walletBalance,
		`SELECT wallet_balance FROM operators WHERE id = $1 FOR UPDATE`, o.OperatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOperatorNotFound
		}
		return nil, fmt.Errorf("failed to lock operator wallet: %w", err)
	}

	if walletBalance < amount {
		return nil, ErrInsufficientWallet
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE operators SET wallet_balance = wallet_balance - $1, updated_at = NOW() WHERE id = $2`,
		amount, o.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit operator wallet: %w", err)
	}

	err = tx.GetContext(ctx, &o,
		`UPDATE outlets SET bcf_balance = bcf_balance + $1, updated_at = NOW() WHERE id = $2 RETURNING *`,
		amount, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit outlet float: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &o, nil
}
