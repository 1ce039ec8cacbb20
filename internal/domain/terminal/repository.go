package terminal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/omspos/oms-api/internal/authz"
)

type Repository interface {
	Create(ctx context.Context, t *Terminal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Terminal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, filter authz.Filter) ([]*TerminalView, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, t *Terminal) error {
	query := `
		INSERT INTO terminals (id, outlet_id, code, status, pairing_key, created_at, updated_at)
		VALUES (:id, :outlet_id, :code, :status, :pairing_key, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTerminalCodeTaken
		}
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Terminal, error) {
	var t Terminal
	err := r.db.GetContext(ctx, &t, `SELECT * FROM terminals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get terminal: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM terminals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete terminal: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrTerminalNotFound
	}
	return nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE terminals SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set terminal status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrTerminalNotFound
	}
	return nil
}

const viewColumns = `
	t.*, p.nickname AS player_nickname, w.balance AS player_balance
	FROM terminals t
	LEFT JOIN players p ON p.id = t.bound_player_id
	LEFT JOIN wallets w ON w.player_id = p.id AND w.outlet_id = t.outlet_id`

func (r *postgresRepository) List(ctx context.Context, filter authz.Filter) ([]*TerminalView, error) {
	terminals := []*TerminalView{}
	if filter.None {
		return terminals, nil
	}

	query := `SELECT ` + viewColumns
	args := []interface{}{}
	switch {
	case filter.All:
	case filter.OperatorID.Valid:
		query += ` JOIN outlets o ON o.id = t.outlet_id WHERE o.operator_id = $1`
		args = append(args, filter.OperatorID.UUID)
	case filter.OutletID.Valid:
		query += ` WHERE t.outlet_id = $1`
		args = append(args, filter.OutletID.UUID)
	default:
		return terminals, nil
	}
	query += ` ORDER BY t.code`

	if err := r.db.SelectContext(ctx, &terminals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}
	return terminals, nil
}
