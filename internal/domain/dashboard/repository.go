package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	OutletFloat(ctx context.Context, outletID uuid.UUID) (int64, error)
	ActiveTerminals(ctx context.Context, outletID uuid.UUID) (int, error)
	OperatorFloat(ctx context.Context, operatorID uuid.UUID) (int64, error)
	OperatorActiveTerminals(ctx context.Context, operatorID uuid.UUID) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) OutletFloat(ctx context.Context, outletID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance,
		`SELECT bcf_balance FROM outlets WHERE id = $1`, outletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read outlet float: %w", err)
	}
	return balance, nil
}

func (r *postgresRepository) ActiveTerminals(ctx context.Context, outletID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM terminals WHERE outlet_id = $1 AND status != 'Offline'`, outletID)
	if err != nil {
		return 0, fmt.Errorf("failed to count terminals: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) OperatorFloat(ctx context.Context, operatorID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance,
		`SELECT COALESCE(SUM(bcf_balance), 0) FROM outlets WHERE operator_id = $1`, operatorID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum outlet floats: %w", err)
	}
	return balance, nil
}

func (r *postgresRepository) OperatorActiveTerminals(ctx context.Context, operatorID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM terminals t
		 JOIN outlets o ON o.id = t.outlet_id
		 WHERE o.operator_id = $1 AND t.status != 'Offline'`, operatorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count terminals: %w", err)
	}
	return count, nil
}
