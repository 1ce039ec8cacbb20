package operator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, op *Operator) error
	GetByID(ctx context.Context, id uuid.UUID) (*Operator, error)
	GetByName(ctx context.Context, name string) (*Operator, error)
	Update(ctx context.Context, op *Operator) error
	List(ctx context.Context) ([]*Operator, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, op *Operator) error {
	query := `
		INSERT INTO operators (id, name, wallet_balance, contact_person, email, created_at, updated_at)
		VALUES (:id, :name, :wallet_balance, :contact_person, :email, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, op)
	if err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Operator, error) {
	var op Operator
	err := r.db.GetContext(ctx, &op, `SELECT * FROM operators WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return &op, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*Operator, error) {
	var op Operator
	err := r.db.GetContext(ctx, &op, `SELECT * FROM operators WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operator by name: %w", err)
	}
	return &op, nil
}

func (r *postgresRepository) Update(ctx context.Context, op *Operator) error {
	query := `
		UPDATE operators
		SET name = :name, wallet_balance = :wallet_balance,
		    contact_person = :contact_person, email = :email, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, op)
	if err != nil {
		return fmt.Errorf("failed to update operator: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrOperatorNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Operator, error) {
	operators := []*Operator{}
	err := r.db.SelectContext(ctx, &operators, `SELECT * FROM operators ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	return operators, nil
}
