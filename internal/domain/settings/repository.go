package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	GetConfig(ctx context.Context, key string) (*ConfigEntry, error)
	ListConfig(ctx context.Context) ([]*ConfigEntry, error)
	UpsertConfig(ctx context.Context, key, value string) (*ConfigEntry, error)
	ListAllowedIPs(ctx context.Context) ([]*AllowedIP, error)
	AddAllowedIP(ctx context.Context, ip *AllowedIP) error
	RemoveAllowedIP(ctx context.Context, id uuid.UUID) error
	IsAllowedIP(ctx context.Context, address string) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetConfig(ctx context.Context, key string) (*ConfigEntry, error) {
	var entry ConfigEntry
	err := r.db.GetContext(ctx, &entry, `SELECT * FROM system_config WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get config entry: %w", err)
	}
	return &entry, nil
}

func (r *postgresRepository) ListConfig(ctx context.Context) ([]*ConfigEntry, error) {
	entries := []*ConfigEntry{}
	err := r.db.SelectContext(ctx, &entries, `SELECT * FROM system_config ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}
	return entries, nil
}

func (r *postgresRepository) UpsertConfig(ctx context.Context, key, value string) (*ConfigEntry, error) {
	var entry ConfigEntry
	err := r.db.GetContext(ctx, &entry,
		`INSERT INTO system_config (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		 RETURNING *`,
		key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert config entry: %w", err)
	}
	return &entry, nil
}

func (r *postgresRepository) ListAllowedIPs(ctx context.Context) ([]*AllowedIP, error) {
	ips := []*AllowedIP{}
	err := r.db.SelectContext(ctx, &ips, `SELECT * FROM ip_allowlist ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowlist: %w", err)
	}
	return ips, nil
}

func (r *postgresRepository) AddAllowedIP(ctx context.Context, ip *AllowedIP) error {
	query := `
		INSERT INTO ip_allowlist (id, address, label, outlet_id, created_at)
		VALUES (:id, :address, :label, :outlet_id, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, ip)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAddressDuplicated
		}
		return fmt.Errorf("failed to add allowlist entry: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveAllowedIP(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ip_allowlist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove allowlist entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// IsAllowedIP reports whether an address may reach login. An empty
// allow-list admits everyone; once any entry exists, only listed
// addresses get through. Entries match whether global or outlet-scoped:
// login runs before authentication, so the caller's outlet is unknown.
func (r *postgresRepository) IsAllowedIP(ctx context.Context, address string) (bool, error) {
	var allowed bool
	err := r.db.GetContext(ctx, &allowed,
		`SELECT NOT EXISTS(SELECT 1 FROM ip_allowlist)
		     OR EXISTS(SELECT 1 FROM ip_allowlist WHERE address = $1)`, address)
	if err != nil {
		return false, fmt.Errorf("failed to check allowlist: %w", err)
	}
	return allowed, nil
}
